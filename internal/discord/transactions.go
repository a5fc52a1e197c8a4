package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"paylink.io/paylink-social/internal/links"
	"paylink.io/paylink-social/internal/networks"
	"paylink.io/paylink-social/pkg/errors"
	"paylink.io/paylink-social/pkg/log"
)

const paginateCustomIDPrefix = "paginate_"

func senderCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondTransactionPage(s, i, links.RoleSender, 1)
}

func receiverCommandHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondTransactionPage(s, i, links.RoleReceiver, 1)
}

func respondTransactionPage(s *discordgo.Session, i *discordgo.InteractionCreate, role links.Role, pageNum int) {
	user := interactionUser(i)
	page, err := links.PageTransactions(user, role, pageNum)
	if err != nil {
		if !errors.Is(err, links.ErrNotFound) {
			log.Error(err)
		}
		respondEphemeralContent(s, i, transactionsErrorMessage(err))
		return
	}
	if len(page.Items) == 0 && page.Number == 1 {
		respondEphemeralContent(s, i, "No transactions found.")
		return
	}
	respondEphemeral(s, i, &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{transactionPageEmbed(role, page)},
		Components: transactionPageButtons(role, page),
	})
}

func transactionPageEmbed(role links.Role, page *links.TransactionPage) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Transactions (Page %v)", page.Number),
	}
	counterpart := "To"
	if role == links.RoleReceiver {
		counterpart = "From"
	}
	for _, row := range page.Items {
		value := fmt.Sprintf("%v `%v`\nAmount: %v\n[Explorer](%v)",
			counterpart, row.CounterpartAddress, row.Amount,
			networks.ExplorerTxnURL(row.Network, row.TransactionHash))
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  time.UnixMilli(row.GenerateTime).UTC().Format("2006-01-02 15:04:05"),
			Value: value,
		})
	}
	return embed
}

func transactionPageButtons(role links.Role, page *links.TransactionPage) []discordgo.MessageComponent {
	row := &discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			&discordgo.Button{
				Style:    discordgo.SecondaryButton,
				Label:    "Prev",
				CustomID: paginateCustomID(role, "prev", page.Number),
				Disabled: page.Number <= 1,
			},
			&discordgo.Button{
				Style:    discordgo.SecondaryButton,
				Label:    "Next",
				CustomID: paginateCustomID(role, "next", page.Number),
				Disabled: !page.HasNext,
			},
		},
	}
	return []discordgo.MessageComponent{row}
}

func paginateCustomID(role links.Role, direction string, page int) string {
	return fmt.Sprintf("%v%v_%v_%v", paginateCustomIDPrefix, role, direction, page)
}

// transactionsErrorMessage maps a history page failure to the user-visible
// reply.
func transactionsErrorMessage(err error) string {
	if errors.Is(err, links.ErrNotFound) {
		return "No address connected."
	}
	return "Failed to load transactions."
}

func paginateComponentHandler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	role, target, err := parsePaginateCustomID(i.MessageComponentData().CustomID)
	if err != nil {
		log.Error(err)
		respondEphemeralContent(s, i, "Failed to load transactions.")
		return
	}
	user := interactionUser(i)
	page, err := links.PageTransactions(user, role, target)
	if err != nil {
		if !errors.Is(err, links.ErrNotFound) {
			log.Error(err)
		}
		respondEphemeralContent(s, i, transactionsErrorMessage(err))
		return
	}
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{transactionPageEmbed(role, page)},
			Components: transactionPageButtons(role, page),
		},
	})
	if err != nil {
		log.Error(errors.WrapAndReport(err, "update transaction page"))
	}
}

// parsePaginateCustomID extracts the role and the target page from the
// paginate_<role>_<direction>_<page> custom id.
func parsePaginateCustomID(customID string) (links.Role, int, error) {
	parts := strings.Split(strings.TrimPrefix(customID, paginateCustomIDPrefix), "_")
	if len(parts) != 3 {
		return "", 0, errors.Errorf("malformed paginate custom id %v", customID)
	}
	role, err := links.ParseRole(parts[0])
	if err != nil {
		return "", 0, err
	}
	current, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, errors.Errorf("malformed page in custom id %v", customID)
	}
	target := current
	switch parts[1] {
	case "next":
		target++
	case "prev":
		target--
	default:
		return "", 0, errors.Errorf("unknown paginate direction %v", parts[1])
	}
	if target < 1 {
		target = 1
	}
	return role, target, nil
}
