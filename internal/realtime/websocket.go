package realtime

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/auth"
	appConfig "github.com/festy23/street_sports/internal/config"
)

const (
	joinUserRoom  = "join-user-room"
	protocolError = EventType("error")
	maxFrameSize  = 4096
)

// TokenParser verifies the token presented on connect.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type inboundFrame struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// Server upgrades HTTP requests to websocket connections registered with a Hub.
type Server struct {
	hub      *Hub
	parser   TokenParser
	cfg      appConfig.RealtimeConfig
	upgrader websocket.Upgrader
	logger   *zap.SugaredLogger
}

// NewServer creates a websocket server.
func NewServer(hub *Hub, parser TokenParser, cfg appConfig.RealtimeConfig, logger *zap.SugaredLogger) *Server {
	return &Server{
		hub:    hub,
		parser: parser,
		cfg:    cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// Handle handles GET /ws. The token comes from the token query parameter or
// an Authorization bearer header; unauthenticated upgrades are refused.
func (s *Server) Handle(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token, _ = strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	claims, err := s.parser.Parse(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"code":    "UNAUTHORIZED",
			"message": "Token is not valid",
		})
		return
	}

	ws, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}

	conn := s.hub.Connect()
	s.logger.Debugw("websocket connected", "conn_id", conn.ID(), "user_id", claims.UserID)

	go s.writePump(ws, conn)
	s.readPump(ws, conn, claims.UserID)
}

func (s *Server) readPump(ws *websocket.Conn, conn *Conn, authUserID string) {
	defer func() {
		s.hub.Disconnect(conn.ID())
		_ = ws.Close()
		s.logger.Debugw("websocket disconnected", "conn_id", conn.ID(), "user_id", authUserID)
	}()

	ws.SetReadLimit(maxFrameSize)
	_ = ws.SetReadDeadline(time.Now().Add(s.cfg.PongTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(s.cfg.PongTimeout))
	})

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debugw("websocket read failed", "conn_id", conn.ID(), "error", err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			s.hub.sendDirect(conn.ID(), protocolError, gin.H{"message": "malformed frame"})
			continue
		}

		switch frame.Type {
		case joinUserRoom:
			s.join(conn, authUserID, frame.UserID)
		default:
			s.hub.sendDirect(conn.ID(), protocolError, gin.H{"message": "unknown frame type"})
		}
	}
}

// join binds the connection to the caller's own channel only.
func (s *Server) join(conn *Conn, authUserID, requested string) {
	if requested == "" {
		requested = authUserID
	}
	if requested != authUserID {
		s.logger.Warnw("refused join for another user", "conn_id", conn.ID(), "user_id", authUserID, "requested", requested)
		s.hub.sendDirect(conn.ID(), protocolError, gin.H{"message": "cannot join another user's channel"})
		return
	}
	if err := s.hub.Join(conn.ID(), requested); err != nil {
		s.hub.sendDirect(conn.ID(), protocolError, gin.H{"message": err.Error()})
	}
}

func (s *Server) writePump(ws *websocket.Conn, conn *Conn) {
	ticker := time.NewTicker(s.cfg.PingPeriod())
	defer func() {
		ticker.Stop()
		_ = ws.Close()
	}()

	for {
		select {
		case data, ok := <-conn.Messages():
			_ = ws.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = ws.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
