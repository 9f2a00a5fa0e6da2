package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Insta-Bids-System/instabids-v2-sub003/pkg/utils"
)

// DiagnosticLog is a client-side log line forwarded by the dashboard
// frontend so UI failures show up in the server logs during debugging
type DiagnosticLog struct {
	Timestamp string                 `json:"timestamp"`
	Context   string                 `json:"context"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data"`
}

// ReceiveDiagnosticLog handles diagnostic logs from the dashboard
// POST /api/logs/diagnostic
func ReceiveDiagnosticLog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var logEntry DiagnosticLog
		if err := json.NewDecoder(r.Body).Decode(&logEntry); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		prefix := "🖥️"
		switch logEntry.Level {
		case "ERROR":
			prefix = "🔴"
		case "WARNING":
			prefix = "🟡"
		case "INFO":
			prefix = "🔵"
		}

		log.Printf("%s DASHBOARD DIAGNOSTIC [%s] %s: %s", prefix, logEntry.Level, logEntry.Context, logEntry.Message)
		if len(logEntry.Data) > 0 {
			if dataJSON, err := json.Marshal(logEntry.Data); err == nil {
				log.Printf("   Data: %s", string(dataJSON))
			}
		}

		utils.Success(w, map[string]string{"message": "Log received"})
	}
}
