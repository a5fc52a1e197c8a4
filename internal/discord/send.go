package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"paylink.io/paylink-social/internal/links"
	"paylink.io/paylink-social/pkg/common"
	"paylink.io/paylink-social/pkg/errors"
	"paylink.io/paylink-social/pkg/log"
)

func sendCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := commandOptionsMapping(i)
	amount := strings.TrimSpace(options["amount"].StringValue())
	recipient := strings.TrimSpace(options["to_address"].StringValue())

	toAddress, err := resolveRecipientAddress(recipient)
	if errors.Is(err, links.ErrNotFound) {
		respondEphemeralContent(s, i, "No valid address connected for the user.")
		return
	}
	if errors.Is(err, links.ErrInvalidInput) {
		respondEphemeralContent(s, i, "Invalid address or user mention.")
		return
	}
	if err != nil {
		log.Error(err)
		respondEphemeralContent(s, i, "Failed to resolve the recipient.")
		return
	}

	link, err := links.CreateSendLink(interactionUser(i), toAddress, amount)
	if err != nil {
		log.Error(err)
		respondEphemeralContent(s, i, "Failed to save send link.")
		return
	}
	respondEphemeral(s, i, &discordgo.InteractionResponseData{
		Content:    fmt.Sprintf("Send `%v` to `%v` by clicking the button below.", amount, toAddress),
		Components: linkButtonRow("Send coins", links.WebURL(links.KindSend, link.Link)),
	})
}

// resolveRecipientAddress accepts either a raw address or a discord user
// mention, resolving the mention to the mentioned user's connected address.
func resolveRecipientAddress(recipient string) (string, error) {
	mentioned, ok := parseUserMention(recipient)
	if !ok {
		if !links.ValidAddress(recipient) {
			return "", links.ErrInvalidInput
		}
		return recipient, nil
	}
	return links.ResolveAddress(mentioned)
}

func parseUserMention(s string) (string, bool) {
	if !strings.HasPrefix(s, "<@") || !strings.HasSuffix(s, ">") {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(s, "<@"), ">")
	id = strings.TrimPrefix(id, "!")
	if common.DecodeTimeInSnowflake(id) == nil {
		return "", false
	}
	return id, true
}
