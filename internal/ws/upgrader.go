package ws

import (
	"net/http"
	"os"
	"slices"
	"strings"

	"github.com/gorilla/websocket"
)

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		if os.Getenv("ENVIRONMENT") == "development" {
			return true
		}

		allowed := strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",")
		return slices.Contains(allowed, r.Header.Get("Origin"))
	},
}
