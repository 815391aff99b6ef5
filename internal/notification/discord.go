package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JaguaNaTioN/Veg-index-processor/internal/properties"
)

type DiscordMessage struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

type DiscordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

// SendBatchSummary posts the batch outcome to the configured Discord
// webhook. A no-op when no webhook URL is set.
func SendBatchSummary(scenesOK, scenesFailed int, summaryPath string) error {
	url := properties.DiscordNotificationUrl()
	if url == "" {
		return nil
	}

	color := 65280 // green
	title := "Batch index processing finished"
	if scenesFailed > 0 {
		color = 16711680 // red
	}

	message := DiscordMessage{
		Embeds: []DiscordEmbed{
			{
				Title:       title,
				Description: fmt.Sprintf("Scenes ok: %d\nScenes with failures: %d\nSummary: %s", scenesOK, scenesFailed, summaryPath),
				Color:       color,
			},
		},
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send Discord notification, status code: %d", resp.StatusCode)
	}

	return nil
}
