package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"paylink.io/paylink-social/internal/database"
	"paylink.io/paylink-social/internal/links"
	"paylink.io/paylink-social/pkg/errors"
	"paylink.io/paylink-social/pkg/log"
)

const (
	voteListCustomID   = "vote_list"
	tallyListCustomID  = "tally_list"
	resultListCustomID = "result_list"
	voteOptionIDPrefix = "vote_option_"

	// discord caps a select menu at 25 options
	maxSelectOptions = 25
)

func createVoteCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := commandOptionsMapping(i)
	topic := strings.TrimSpace(options["topic"].StringValue())
	var voteOptions []string
	for n := 1; n <= 10; n++ {
		opt, ok := options[fmt.Sprintf("option%v", n)]
		if !ok {
			continue
		}
		if value := strings.TrimSpace(opt.StringValue()); value != "" {
			voteOptions = append(voteOptions, value)
		}
	}
	link, err := links.CreateCreateLink(interactionUser(i), topic, voteOptions, i.ChannelID)
	if errors.Is(err, links.ErrInvalidInput) {
		respondEphemeralContent(s, i, "A vote needs a topic and at least two options.")
		return
	}
	if err != nil {
		log.Error(err)
		respondEphemeralContent(s, i, "Failed to save the vote.")
		return
	}
	respondEphemeral(s, i, &discordgo.InteractionResponseData{
		Content:    fmt.Sprintf("Create the vote `%v` by clicking the button below.", topic),
		Components: linkButtonRow("Create vote", links.WebURL(links.KindCreate, link.Link)),
	})
}

func voteCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sessions, err := database.CreateLinks{}.SelectOpenTopics()
	if err != nil {
		log.Error(err)
		respondEphemeralContent(s, i, "Failed to load open votes.")
		return
	}
	respondTopicList(s, i, sessions, voteListCustomID, links.SelectionVote,
		"Pick a vote", "No open votes.")
}

func tallyCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sessions, err := database.CreateLinks{}.SelectOpenTopicsByUser(interactionUser(i))
	if err != nil {
		log.Error(err)
		respondEphemeralContent(s, i, "Failed to load your votes.")
		return
	}
	respondTopicList(s, i, sessions, tallyListCustomID, links.SelectionTally,
		"Pick a vote to tally", "No votes can be tallied by you.")
}

func resultCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sessions, err := database.CreateLinks{}.SelectAllTopics()
	if err != nil {
		log.Error(err)
		respondEphemeralContent(s, i, "Failed to load votes.")
		return
	}
	respondTopicList(s, i, sessions, resultListCustomID, links.SelectionResult,
		"Pick a vote", "No votes found.")
}

func respondTopicList(s *discordgo.Session, i *discordgo.InteractionCreate,
	sessions []*database.CreateLinks, customID string, kind links.SelectionKind,
	placeholder, emptyMsg string) {
	if len(sessions) == 0 {
		respondEphemeralContent(s, i, emptyMsg)
		return
	}
	if len(sessions) > maxSelectOptions {
		sessions = sessions[:maxSelectOptions]
	}
	menuOptions := make([]discordgo.SelectMenuOption, 0, len(sessions))
	for _, session := range sessions {
		menuOptions = append(menuOptions, discordgo.SelectMenuOption{
			Label: session.Topic,
			Value: links.Selection{Kind: kind, ID: session.ID}.Value(),
		})
	}
	respondEphemeral(s, i, &discordgo.InteractionResponseData{
		Content: placeholder + ":",
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.SelectMenu{
						CustomID:    customID,
						Placeholder: placeholder,
						Options:     menuOptions,
					},
				},
			},
		},
	})
}

func selectedValue(i *discordgo.InteractionCreate) (string, bool) {
	values := i.MessageComponentData().Values
	if len(values) != 1 {
		return "", false
	}
	return values[0], true
}

func updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
	if err != nil {
		log.Error(errors.WrapAndReport(err, "update component message"))
	}
}

// voteTopicSelectedHandler swaps the topic list for the chosen session's
// option list. The session id rides along in the select's custom id.
func voteTopicSelectedHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	value, ok := selectedValue(i)
	if !ok {
		return
	}
	selection, err := links.ParseSelection(value)
	if err != nil {
		log.Error(err)
		return
	}
	session, err := database.CreateLinks{}.SelectByID(selection.ID)
	if err != nil {
		log.Error(err)
		return
	}
	if session == nil {
		updateMessage(s, i, &discordgo.InteractionResponseData{
			Content:    "The vote no longer exists.",
			Components: []discordgo.MessageComponent{},
		})
		return
	}
	options := session.Options.Strings()
	menuOptions := make([]discordgo.SelectMenuOption, 0, len(options))
	for idx, option := range options {
		menuOptions = append(menuOptions, discordgo.SelectMenuOption{
			Label: option,
			Value: links.OptionChoiceValue(idx),
		})
	}
	updateMessage(s, i, &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("Vote on `%v`:", session.Topic),
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.SelectMenu{
						CustomID:    fmt.Sprintf("%v%v", voteOptionIDPrefix, session.ID),
						Placeholder: "Pick an option",
						Options:     menuOptions,
					},
				},
			},
		},
	})
}

func voteOptionSelectedHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	createID, err := strconv.ParseInt(strings.TrimPrefix(customID, voteOptionIDPrefix), 10, 64)
	if err != nil {
		log.Errorf("malformed vote option custom id %v", customID)
		return
	}
	value, ok := selectedValue(i)
	if !ok {
		return
	}
	choice, err := links.ParseOptionChoice(value)
	if err != nil {
		log.Error(err)
		return
	}
	link, err := links.CreateVoteLink(interactionUser(i), createID, choice)
	if err != nil {
		log.Error(err)
		updateMessage(s, i, &discordgo.InteractionResponseData{
			Content:    "Failed to save your vote.",
			Components: []discordgo.MessageComponent{},
		})
		return
	}
	updateMessage(s, i, &discordgo.InteractionResponseData{
		Content:    "Sign your vote by clicking the button below.",
		Components: linkButtonRow("Sign vote", links.WebURL(links.KindVote, link.Link)),
	})
}

func tallyTopicSelectedHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	value, ok := selectedValue(i)
	if !ok {
		return
	}
	selection, err := links.ParseSelection(value)
	if err != nil {
		log.Error(err)
		return
	}
	link, err := links.CreateTallyLink(interactionUser(i), selection.ID)
	if err != nil {
		log.Error(err)
		updateMessage(s, i, &discordgo.InteractionResponseData{
			Content:    "Failed to open the tally.",
			Components: []discordgo.MessageComponent{},
		})
		return
	}
	updateMessage(s, i, &discordgo.InteractionResponseData{
		Content:    "Declare the winner by clicking the button below.",
		Components: linkButtonRow("Tally vote", links.WebURL(links.KindTally, link.Link)),
	})
}

func resultTopicSelectedHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	value, ok := selectedValue(i)
	if !ok {
		return
	}
	selection, err := links.ParseSelection(value)
	if err != nil {
		log.Error(err)
		return
	}
	standing, err := links.VoteResult(selection.ID)
	if err != nil {
		log.Error(err)
		updateMessage(s, i, &discordgo.InteractionResponseData{
			Content:    "Failed to load the standing.",
			Components: []discordgo.MessageComponent{},
		})
		return
	}
	updateMessage(s, i, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{standingEmbed(standing)},
		Components: []discordgo.MessageComponent{},
	})
}

func standingEmbed(standing *links.VoteStanding) *discordgo.MessageEmbed {
	title := fmt.Sprintf("Standing of `%v`", standing.Topic)
	if standing.Finished {
		title = fmt.Sprintf("Final result of `%v`", standing.Topic)
	}
	embed := &discordgo.MessageEmbed{Title: title}
	for idx, option := range standing.Options {
		var count int
		if idx < len(standing.Counts) {
			count = standing.Counts[idx]
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   option,
			Value:  fmt.Sprintf("%v vote(s)", count),
			Inline: true,
		})
	}
	footer := fmt.Sprintf("%v vote(s) in total", standing.Total)
	if len(standing.Winners) > 0 {
		footer = fmt.Sprintf("%v. Leading: %v", footer, strings.Join(standing.Winners, ", "))
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	return embed
}
