package server

import (
	"errors"
	"net/http"
	"time"

	"punchline/internal/game"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type gameURI struct {
	GameCode string `uri:"gameCode" binding:"required,gamecode"`
}

type playerURI struct {
	GameCode string `uri:"gameCode" binding:"required,gamecode"`
	PlayerID string `uri:"playerId" binding:"required"`
}

type validateQuery struct {
	GameCode string `form:"gameCode" binding:"required,numeric"`
}

type viewerQuery struct {
	PlayerID string `form:"playerId" binding:"omitempty,max=64"`
}

type createPlayerRequest struct {
	Nickname string `json:"nickname" binding:"required,nickname"`
}

type requesterRequest struct {
	RequesterID string `json:"requesterId" binding:"required"`
}

type punchlinesRequest struct {
	PlayerID   string   `json:"playerId" binding:"required"`
	Punchlines []string `json:"punchlines" binding:"required"`
}

type winnerRequest struct {
	RequesterID     string `json:"requesterId" binding:"required"`
	WinningPlayerID string `json:"winningPlayerId" binding:"required"`
}

var (
	nicknameMessages = bindMessages{
		"Nickname": {
			"required": "nickname is required",
			"nickname": "nickname must be 1-20 printable characters",
		},
	}
	requesterMessages = bindMessages{
		"RequesterID": {"required": "requesterId is required"},
	}
	punchlinesMessages = bindMessages{
		"PlayerID":   {"required": "playerId is required"},
		"Punchlines": {"required": "punchlines are required"},
	}
	winnerMessages = bindMessages{
		"RequesterID":     {"required": "requesterId is required"},
		"WinningPlayerID": {"required": "winningPlayerId is required"},
	}
	viewerMessages = bindMessages{
		"PlayerID": {"max": "playerId is too long"},
	}
	validateMessages = bindMessages{
		"GameCode": {
			"required": "gameCode is required",
			"numeric":  "gameCode must be numeric",
		},
	}
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	registerValidators()
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.POST("/game", s.handleCreateGame)
	router.GET("/game/validate", s.handleValidateGame)

	games := router.Group("/games/:gameCode")
	games.GET("", s.handleGetGame)
	games.POST("/players", s.handleCreatePlayer)
	games.GET("/players/:playerId", s.handleGetPlayer)
	games.POST("/start", s.handleStartGame)
	games.POST("/round/players-choose", s.handlePlayersChoose)
	games.POST("/round/punchlines", s.handleChoosePunchlines)
	games.POST("/round/host-chooses", s.handleHostChooses)
	games.POST("/round/winner", s.handleChooseWinner)
	games.POST("/round/next", s.handleNextRound)

	router.GET("/ws/games/:gameCode", s.handleWebsocket)
	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request", "method", c.Request.Method, "path", c.FullPath(), "status", c.Writer.Status(), "duration", time.Since(start))
	}
}

func (s *Server) handleCreateGame(c *gin.Context) {
	ctx := c.Request.Context()
	code, err := s.CreateGame(ctx)
	if err != nil {
		s.writeGameError(c, err)
		return
	}
	g, err := s.loadGame(ctx, code)
	if err != nil {
		s.writeGameError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snapshot(g, ""))
}

func (s *Server) handleValidateGame(c *gin.Context) {
	var req validateQuery
	if !bindQuery(c, &req, validateMessages, "invalid game code") {
		return
	}
	ok, err := s.ValidateGameCode(c.Request.Context(), req.GameCode)
	if err != nil {
		s.writeGameError(c, err)
		return
	}
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleGetGame(c *gin.Context) {
	var uri gameURI
	if !bindURI(c, &uri) {
		return
	}
	var query viewerQuery
	if !bindQuery(c, &query, viewerMessages, "invalid playerId") {
		return
	}
	g, err := s.loadGame(c.Request.Context(), uri.GameCode)
	if err != nil {
		s.writeGameError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot(g, query.PlayerID))
}

func (s *Server) handleCreatePlayer(c *gin.Context) {
	var uri gameURI
	if !bindURI(c, &uri) {
		return
	}
	var req createPlayerRequest
	if !bindJSON(c, &req, nicknameMessages, "") {
		return
	}
	playerID, err := s.CreatePlayer(c.Request.Context(), uri.GameCode, req.Nickname)
	if err != nil {
		s.writeGameError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"playerId": playerID})
}

func (s *Server) handleGetPlayer(c *gin.Context) {
	var uri playerURI
	if !bindURI(c, &uri) {
		return
	}
	player, err := s.GetPlayer(c.Request.Context(), uri.GameCode, uri.PlayerID, nil)
	if err != nil {
		s.writeGameError(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

func (s *Server) handleStartGame(c *gin.Context) {
	var uri gameURI
	if !bindURI(c, &uri) {
		return
	}
	var req requesterRequest
	if !bindJSON(c, &req, requesterMessages, "") {
		return
	}
	if err := s.StartGame(c.Request.Context(), uri.GameCode, req.RequesterID); err != nil {
		s.writeGameError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePlayersChoose(c *gin.Context) {
	var uri gameURI
	if !bindURI(c, &uri) {
		return
	}
	var req requesterRequest
	if !bindJSON(c, &req, requesterMessages, "") {
		return
	}
	if err := s.EnterPlayersChooseState(c.Request.Context(), uri.GameCode, req.RequesterID); err != nil {
		s.writeGameError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleChoosePunchlines(c *gin.Context) {
	var uri gameURI
	if !bindURI(c, &uri) {
		return
	}
	var req punchlinesRequest
	if !bindJSON(c, &req, punchlinesMessages, "") {
		return
	}
	if err := s.PlayerChoosePunchlines(c.Request.Context(), uri.GameCode, req.PlayerID, req.Punchlines); err != nil {
		s.writeGameError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleHostChooses(c *gin.Context) {
	var uri gameURI
	if !bindURI(c, &uri) {
		return
	}
	var req requesterRequest
	if !bindJSON(c, &req, requesterMessages, "") {
		return
	}
	punchlines, err := s.EnterHostChoosesState(c.Request.Context(), uri.GameCode, req.RequesterID)
	if err != nil {
		s.writeGameError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"punchlines": punchlines})
}

func (s *Server) handleChooseWinner(c *gin.Context) {
	var uri gameURI
	if !bindURI(c, &uri) {
		return
	}
	var req winnerRequest
	if !bindJSON(c, &req, winnerMessages, "") {
		return
	}
	winner, err := s.ChooseWinner(c.Request.Context(), uri.GameCode, req.RequesterID, req.WinningPlayerID)
	if err != nil {
		s.writeGameError(c, err)
		return
	}
	c.JSON(http.StatusOK, winner)
}

func (s *Server) handleNextRound(c *gin.Context) {
	var uri gameURI
	if !bindURI(c, &uri) {
		return
	}
	var req requesterRequest
	if !bindJSON(c, &req, requesterMessages, "") {
		return
	}
	if err := s.NextRound(c.Request.Context(), uri.GameCode, req.RequesterID); err != nil {
		s.writeGameError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleWebsocket streams snapshots to one viewer. A playerId, when given,
// must belong to the game; without one the viewer sees the public table.
func (s *Server) handleWebsocket(c *gin.Context) {
	var uri gameURI
	if !bindURI(c, &uri) {
		return
	}
	var query viewerQuery
	if !bindQuery(c, &query, viewerMessages, "invalid playerId") {
		return
	}
	ctx := c.Request.Context()
	g, err := s.loadGame(ctx, uri.GameCode)
	if err != nil {
		s.writeGameError(c, err)
		return
	}
	if query.PlayerID != "" {
		if _, err := s.GetPlayer(ctx, uri.GameCode, query.PlayerID, g); err != nil {
			s.writeGameError(c, err)
			return
		}
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	s.logger.Debug("ws connected", "game_code", uri.GameCode, "player_id", query.PlayerID, "remote", c.Request.RemoteAddr)
	client := &wsClient{conn: conn, playerID: query.PlayerID}
	s.ws.Add(uri.GameCode, client)
	if err := client.send(wsMessage{Type: "snapshot", Game: snapshot(g, query.PlayerID)}, s.ws.writeWait); err != nil {
		s.ws.Remove(uri.GameCode, client)
		return
	}
	go s.readWS(uri.GameCode, client)
}

func (s *Server) writeGameError(c *gin.Context, err error) {
	var gameErr *game.Error
	if !errors.As(err, &gameErr) {
		s.logger.Error("request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrGameNotFound), errors.Is(err, game.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrInvalidRoundTransition), errors.Is(err, game.ErrInvalidSubmission), errors.Is(err, game.ErrGameFull):
		status = http.StatusConflict
	case errors.Is(err, game.ErrInvalidRequest):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": gameErr.Message})
}
