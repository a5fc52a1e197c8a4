package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"paylink.io/paylink-social/internal/links"
	"paylink.io/paylink-social/pkg/errors"
	"paylink.io/paylink-social/pkg/log"
)

func connectCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	link, err := links.CreateUserLink(user)
	if err != nil {
		log.Error(err)
		respondEphemeralContent(s, i, "Failed to create the connect link.")
		return
	}
	respondEphemeral(s, i, &discordgo.InteractionResponseData{
		Content:    "Click the button below to connect your wallet.",
		Components: linkButtonRow("Connect wallet", links.WebURL(links.KindConnect, link.Link)),
	})
}

func checkCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	address, err := links.ResolveAddress(user)
	if errors.Is(err, links.ErrNotFound) {
		respondEphemeralContent(s, i, "No address connected.")
		return
	}
	if err != nil {
		log.Error(err)
		respondEphemeralContent(s, i, "Failed to look up your address.")
		return
	}
	respondEphemeralContent(s, i, fmt.Sprintf("Your connected address is `%v`.", address))
}
