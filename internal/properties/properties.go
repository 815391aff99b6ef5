package properties

import "os"

func InputRoot() string {
	if v := os.Getenv("INPUT_ROOT"); v != "" {
		return v
	}
	return "data/input"
}

func OutputRoot() string {
	if v := os.Getenv("OUTPUT_ROOT"); v != "" {
		return v
	}
	return "data/output"
}

func LogDir() string {
	if v := os.Getenv("LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func DiscordNotificationUrl() string {
	return os.Getenv("DISCORD_NOTIFICATION_URL")
}
