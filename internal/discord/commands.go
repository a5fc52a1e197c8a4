package discord

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/bwmarrin/discordgo"
	"paylink.io/paylink-social/pkg/log"
)

const (
	commandConnect    = "connect"
	commandCheck      = "check"
	commandSend       = "send"
	commandSender     = "sender"
	commandReceiver   = "receiver"
	commandCreateVote = "createvote"
	commandVote       = "vote"
	commandTally      = "tally"
	commandResult     = "result"
)

var (
	walletCommands = []*discordgo.ApplicationCommand{
		{
			Name:        commandConnect,
			Description: "Connect your wallet address",
		},
		{
			Name:        commandCheck,
			Description: "Check your connected wallet address",
		},
		{
			Name:        commandSend,
			Description: "Send coins to an address or a mentioned user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "amount",
					Description: "Amount to send",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "to_address",
					Description: "Recipient address or user mention",
					Required:    true,
				},
			},
		},
		{
			Name:        commandSender,
			Description: "List transactions you sent",
		},
		{
			Name:        commandReceiver,
			Description: "List transactions you received",
		},
		{
			Name:        commandCreateVote,
			Description: "Create a vote with up to ten options",
			Options:     createVoteOptions(),
		},
		{
			Name:        commandVote,
			Description: "Vote on an open topic",
		},
		{
			Name:        commandTally,
			Description: "Tally one of your open votes",
		},
		{
			Name:        commandResult,
			Description: "Show the standing of a vote",
		},
	}

	commandsHandlers = map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		commandConnect:    connectCommandHandler,
		commandCheck:      checkCommandHandler,
		commandSend:       sendCommandHandler,
		commandSender:     senderCommandHandler,
		commandReceiver:   receiverCommandHandler,
		commandCreateVote: createVoteCommandHandler,
		commandVote:       voteCommandHandler,
		commandTally:      tallyCommandHandler,
		commandResult:     resultCommandHandler,
	}

	componentHandlers = map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		paginateCustomIDPrefix: paginateComponentHandler,
		voteListCustomID:       voteTopicSelectedHandler,
		voteOptionIDPrefix:     voteOptionSelectedHandler,
		tallyListCustomID:      tallyTopicSelectedHandler,
		resultListCustomID:     resultTopicSelectedHandler,
	}
)

func createVoteOptions() []*discordgo.ApplicationCommandOption {
	options := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "topic",
			Description: "Topic of the vote",
			Required:    true,
		},
	}
	for i := 1; i <= 10; i++ {
		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        fmt.Sprintf("option%v", i),
			Description: fmt.Sprintf("Vote option %v", i),
			Required:    i <= 2,
		})
	}
	return options
}

func interactionEventHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer func() {
		if err := recover(); err != nil {
			log.Errorf("handle interaction event panic:%v\n%v", err, string(debug.Stack()))
		}
	}()
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		if h, ok := commandsHandlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		for prefix, handler := range componentHandlers {
			if strings.HasPrefix(customID, prefix) {
				handler(s, i)
				return
			}
		}
		log.Warnf("No handler matched component %v", customID)
	}
}

func commandOptionsMapping(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	mapping := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	for _, opt := range i.ApplicationCommandData().Options {
		mapping[opt.Name] = opt
	}
	return mapping
}
