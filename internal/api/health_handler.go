package api

import "net/http"

const aliveMessage = "✅ FASTIQ Bot is alive!"

// Alive answers liveness probes.
func Alive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(aliveMessage))
}
