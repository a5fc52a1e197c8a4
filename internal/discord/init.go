package discord

import (
	"context"
	"os"
	"os/signal"
	"sync"

	"github.com/bwmarrin/discordgo"
	"paylink.io/paylink-social/internal/config"
	"paylink.io/paylink-social/pkg/errors"
	"paylink.io/paylink-social/pkg/log"
)

var (
	session *discordgo.Session
)

func SetupBot(ctx context.Context, bot *config.DiscordBot) {
	err := initBotSessionAndHandlers(bot)
	if err != nil {
		log.Fatal(err)
	}
	defer session.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	log.Infof("Gracefully shutting down")
}

func initBotSessionAndHandlers(bot *config.DiscordBot) error {
	ses, err := discordgo.New("Bot " + bot.AuthToken)
	if err != nil {
		return errors.ErrorfAndReport("create new discord session:%v", err)
	}
	session = ses
	ses.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildIntegrations | discordgo.IntentsDirectMessages
	ses.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) { log.Info("Bot is running!") })
	ses.AddHandler(guildCreateEventHandler)
	ses.AddHandler(interactionEventHandler)
	if err := ses.Open(); err != nil {
		return errors.ErrorfAndReport("Cannot open the session: %v", err)
	}
	return nil
}

var (
	initializedGuildCommandsLock sync.Mutex
	initializedGuildCommands     = make(map[string]bool)
)

func guildCreateEventHandler(s *discordgo.Session, g *discordgo.GuildCreate) {
	initializedGuildCommandsLock.Lock()
	defer initializedGuildCommandsLock.Unlock()

	if initializedGuildCommands[g.ID] {
		return
	}
	initializedGuildCommands[g.ID] = true
	overwriteAppCommands(s, g.ID)
}

func overwriteAppCommands(s *discordgo.Session, guildID string) {
	_, err := s.ApplicationCommandBulkOverwrite(config.Global.DiscordBot.AppID, guildID, walletCommands)
	if err != nil {
		log.Errorf("Cannot register commands: %v", err)
		return
	}
	log.Infof("Overwrite app commands in guild %v", guildID)
}

func interactionUser(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	data.Flags = discordgo.MessageFlagsEphemeral
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Error(errors.WrapAndReport(err, "respond interaction"))
	}
}

func respondEphemeralContent(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	respondEphemeral(s, i, &discordgo.InteractionResponseData{Content: content})
}

// linkButtonRow wraps the completion page URL in a single link button.
func linkButtonRow(label, url string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		&discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				&discordgo.Button{
					Style: discordgo.LinkButton,
					Label: label,
					URL:   url,
				},
			},
		},
	}
}
