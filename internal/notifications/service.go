package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"clipforge/internal/config"
)

const userAgent = "clipforge/0.1.0"

// Event identifies a pipeline milestone worth telling the operator about.
type Event string

const (
	EventUploadCompleted    Event = "upload-completed"
	EventTrimCompleted      Event = "trim-completed"
	EventSubtitlesCompleted Event = "subtitles-completed"
	EventRenderCompleted    Event = "render-completed"
	EventError              Event = "error"
	EventTest               Event = "test"
)

// Payload carries event-specific fields used when formatting a message.
type Payload map[string]string

// Service publishes pipeline events to the configured notifier.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	msg, ok := format(event, payload)
	if !ok {
		return nil
	}
	return n.send(ctx, msg)
}

// format maps an event to a user-facing message. Intermediate stage events are
// suppressed; a busy editing session would otherwise flood the topic.
func format(event Event, payload Payload) (message, bool) {
	get := func(key string) string {
		return strings.TrimSpace(payload[key])
	}

	switch event {
	case EventUploadCompleted:
		title := get("title")
		if title == "" {
			title = "untitled"
		}
		return message{
			title: "Clipforge - Uploaded",
			body:  fmt.Sprintf("Uploaded: %s", title),
			tags:  []string{"clipforge", "upload", "completed"},
		}, true
	case EventRenderCompleted:
		title := get("title")
		if title == "" {
			title = "untitled"
		}
		body := fmt.Sprintf("Ready to download: %s", title)
		if finalFile := get("finalFile"); finalFile != "" {
			body = fmt.Sprintf("%s\nFile: %s", body, finalFile)
		}
		return message{
			title:    "Clipforge - Rendered",
			body:     body,
			tags:     []string{"clipforge", "render", "completed"},
			priority: "high",
		}, true
	case EventError:
		var builder strings.Builder
		builder.WriteString("Error")
		if contextLabel := get("context"); contextLabel != "" {
			builder.WriteString(" with ")
			builder.WriteString(contextLabel)
		}
		builder.WriteString(": ")
		if detail := get("error"); detail != "" {
			builder.WriteString(detail)
		} else {
			builder.WriteString("unknown")
		}
		return message{
			title:    "Clipforge - Error",
			body:     builder.String(),
			tags:     []string{"clipforge", "error", "alert"},
			priority: "high",
		}, true
	case EventTest:
		return message{
			title:    "Clipforge - Test",
			body:     "Notification system test",
			tags:     []string{"clipforge", "test"},
			priority: "low",
		}, true
	default:
		return message{}, false
	}
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" && msg.priority != "default" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
