package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"paylink.io/paylink-social/internal/config"
	"paylink.io/paylink-social/internal/database"
	"paylink.io/paylink-social/internal/links"
	"paylink.io/paylink-social/pkg/errors"
	"paylink.io/paylink-social/pkg/log"
)

// NewServer serves the wallet pages' backend: every action has a GET that
// loads the pending record behind a token and a POST that completes it.
func NewServer() {
	router := gin.Default()
	router.Use(gin.Recovery())

	router.GET("/connect", getUserLink)
	router.POST("/connect", completeUserLink)
	router.GET("/send", getSendLink)
	router.POST("/send", completeSendLink)
	router.GET("/create", getCreateLink)
	router.POST("/create", completeCreateLink)
	router.GET("/vote", getVoteLink)
	router.POST("/vote", completeVoteLink)
	router.GET("/tally", getTallyLink)
	router.POST("/tally", completeTallyLink)

	if err := router.Run(config.Global.Web.Listen); err != nil {
		log.Fatal(err)
	}
}

func writeError(ctx *gin.Context, err error) {
	var msg string
	switch {
	case errors.Is(err, links.ErrNotFound):
		msg = "link not found"
	case errors.Is(err, links.ErrAlreadyCompleted):
		msg = "link already completed"
	case errors.Is(err, links.ErrInvalidInput):
		msg = err.Error()
	default:
		log.Error(err)
		msg = links.ErrUpstream.Error()
	}
	ctx.JSONP(http.StatusOK, map[string]interface{}{
		"error": msg,
	})
}

// completionNetwork falls back to the configured default when the page did
// not name a network.
func completionNetwork(network string) string {
	if network == "" {
		return config.Global.DefaultNetwork
	}
	return network
}

func getUserLink(ctx *gin.Context) {
	row, err := database.UserLinks{}.SelectByLink(ctx.Query("token"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	if row == nil {
		writeError(ctx, links.ErrNotFound)
		return
	}
	ctx.JSONP(http.StatusOK, map[string]interface{}{
		"user":      row.User,
		"completed": row.Address != database.PlaceholderAddress,
	})
}

type completeUserLinkRequest struct {
	Token     string `json:"token"`
	Address   string `json:"address"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

func completeUserLink(ctx *gin.Context) {
	var req completeUserLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, errors.Wrap(links.ErrInvalidInput, err.Error()))
		return
	}
	row, err := links.CompleteUserLink(req.Token, req.Address, req.Message, req.Signature)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSONP(http.StatusOK, map[string]interface{}{
		"success": true,
		"address": row.Address,
	})
}

func getSendLink(ctx *gin.Context) {
	row, err := database.SendLinks{}.SelectByLink(ctx.Query("token"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	if row == nil {
		writeError(ctx, links.ErrNotFound)
		return
	}
	ctx.JSONP(http.StatusOK, map[string]interface{}{
		"user":      row.User,
		"toAddress": row.ToAddress,
		"amount":    row.Amount,
		"completed": row.TransactionHash != nil,
	})
}

type completeTransactionRequest struct {
	Token           string `json:"token"`
	TransactionHash string `json:"transactionHash"`
	Network         string `json:"network"`
	VoteID          string `json:"voteId"`
	Finished        bool   `json:"finished"`
}

func completeSendLink(ctx *gin.Context) {
	var req completeTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, errors.Wrap(links.ErrInvalidInput, err.Error()))
		return
	}
	_, err := links.CompleteSendLink(ctx.Request.Context(), req.Token,
		req.TransactionHash, completionNetwork(req.Network))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSONP(http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func getCreateLink(ctx *gin.Context) {
	row, err := database.CreateLinks{}.SelectByLink(ctx.Query("token"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	if row == nil {
		writeError(ctx, links.ErrNotFound)
		return
	}
	ctx.JSONP(http.StatusOK, map[string]interface{}{
		"user":      row.User,
		"topic":     row.Topic,
		"options":   row.Options.Strings(),
		"completed": row.TransactionHash != nil,
	})
}

func completeCreateLink(ctx *gin.Context) {
	var req completeTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, errors.Wrap(links.ErrInvalidInput, err.Error()))
		return
	}
	_, err := links.CompleteCreateLink(req.Token, req.TransactionHash,
		completionNetwork(req.Network), req.VoteID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSONP(http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// getVoteLink joins the voter's choice with its session so the signing page
// knows the topic, the chosen option and the on-chain vote id in one read.
func getVoteLink(ctx *gin.Context) {
	row, err := database.VoteLinks{}.SelectByLink(ctx.Query("token"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	if row == nil {
		writeError(ctx, links.ErrNotFound)
		return
	}
	session, err := database.CreateLinks{}.SelectByID(row.CreateID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if session == nil {
		writeError(ctx, links.ErrNotFound)
		return
	}
	var voteID string
	if session.VoteID != nil {
		voteID = *session.VoteID
	}
	ctx.JSONP(http.StatusOK, map[string]interface{}{
		"user":      row.User,
		"topic":     session.Topic,
		"options":   session.Options.Strings(),
		"choice":    row.Choice,
		"voteId":    voteID,
		"completed": row.TransactionHash != nil,
	})
}

func completeVoteLink(ctx *gin.Context) {
	var req completeTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, errors.Wrap(links.ErrInvalidInput, err.Error()))
		return
	}
	_, err := links.CompleteVoteLink(req.Token, req.TransactionHash,
		completionNetwork(req.Network), req.VoteID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSONP(http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func getTallyLink(ctx *gin.Context) {
	row, err := database.TallyLinks{}.SelectByLink(ctx.Query("token"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	if row == nil {
		writeError(ctx, links.ErrNotFound)
		return
	}
	ctx.JSONP(http.StatusOK, map[string]interface{}{
		"user":      row.User,
		"voteId":    row.VoteID,
		"completed": row.TransactionHash != nil,
	})
}

func completeTallyLink(ctx *gin.Context) {
	var req completeTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, errors.Wrap(links.ErrInvalidInput, err.Error()))
		return
	}
	_, err := links.CompleteTallyLink(req.Token, req.TransactionHash,
		completionNetwork(req.Network), req.VoteID, req.Finished)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSONP(http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
