package fcm

import (
	"context"
	"errors"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Outcome classifies the result of a single push attempt.
type Outcome int

const (
	// OutcomeDelivered means the gateway accepted the message.
	OutcomeDelivered Outcome = iota
	// OutcomeRejected means the gateway reported the token as permanently
	// invalid (unregistered, sender mismatch or malformed). The token should
	// be purged.
	OutcomeRejected
	// OutcomeTransient covers every other failure (network, rate limit,
	// server error). The token stays untouched.
	OutcomeTransient
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeRejected:
		return "rejected"
	default:
		return "transient_error"
	}
}

// ErrUnavailable is returned when the failure is at the gateway level
// (credential or auth problem) rather than tied to a single token. Callers
// must fail the whole batch without purging anything.
var ErrUnavailable = errors.New("push gateway unavailable")

// Client wraps Firebase Cloud Messaging functionality
type Client struct {
	messagingClient *messaging.Client
}

// NewClient creates a new FCM client using the provided credentials file
func NewClient(credentialsFile string) (*Client, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Println("[FCM] Client initialized successfully")
	return &Client{
		messagingClient: messagingClient,
	}, nil
}

// Notification contains the data to send in a push notification
type Notification struct {
	Title string
	Body  string
	Data  map[string]string // Custom data payload, values must be strings
	// Click action routed by the mobile app
	ClickAction string
}

// Push sends one message to a single device token and classifies the result.
// A non-nil error means the gateway itself is unusable (auth/credential
// failure) and is always ErrUnavailable; per-token failures are reported
// through the Outcome alone.
func (c *Client) Push(ctx context.Context, token string, n Notification) (Outcome, error) {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: n.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:       "default",
				Color:       "#2196F3",
				Icon:        "ic_notification",
				ClickAction: n.ClickAction,
			},
		},
	}

	response, err := c.messagingClient.Send(ctx, message)
	if err == nil {
		log.Printf("[FCM] Message sent successfully: %s", response)
		return OutcomeDelivered, nil
	}

	switch {
	case messaging.IsUnregistered(err):
		log.Printf("[FCM] Invalid token (unregistered): %s", truncateToken(token))
		return OutcomeRejected, nil
	case messaging.IsSenderIDMismatch(err):
		log.Printf("[FCM] Invalid token (sender ID mismatch): %s", truncateToken(token))
		return OutcomeRejected, nil
	case errorutils.IsInvalidArgument(err):
		log.Printf("[FCM] Invalid token (bad argument): %s", truncateToken(token))
		return OutcomeRejected, nil
	case errorutils.IsUnauthenticated(err) || errorutils.IsPermissionDenied(err):
		log.Printf("[FCM] Gateway auth failure: %v", err)
		return OutcomeTransient, ErrUnavailable
	default:
		log.Printf("[FCM] Failed to send to token %s: %v", truncateToken(token), err)
		return OutcomeTransient, nil
	}
}

// truncateToken shortens tokens for logging, they are opaque and long
func truncateToken(token string) string {
	if len(token) > 20 {
		return token[:20] + "..."
	}
	return token
}
