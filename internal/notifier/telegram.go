package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kidusabe1/Budgy-By-K/internal/category"
	"github.com/kidusabe1/Budgy-By-K/internal/logging"
)

// CallbackPrefix tags the quick-pick callback data so the bot side can
// route corrections back to the merchant map. The payload encodes the
// merchant and the chosen quick-pick index: "mapcat:<merchant>:<idx>".
const CallbackPrefix = "mapcat"

const sendTimeout = 5 * time.Second

// Telegram posts an unknown-merchant prompt to a chat via the Bot API,
// with an inline keyboard of quick-pick categories. Failures are logged
// and swallowed; this stage must never affect the pipeline's result.
type Telegram struct {
	apiBase string
	token   string
	chatID  string
	client  *http.Client
	logger  logging.Logger
}

// NewTelegram creates a Telegram notifier for the given bot token and
// chat. Both must be non-empty; callers disable the stage otherwise.
func NewTelegram(token, chatID string, logger logging.Logger) *Telegram {
	return &Telegram{
		apiBase: "https://api.telegram.org",
		token:   token,
		chatID:  chatID,
		client:  &http.Client{Timeout: sendTimeout},
		logger:  logger,
	}
}

type inlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type inlineKeyboard struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

// NotifyUnknown sends the quick-pick prompt naming the unresolved
// merchant. The raw (non-normalized) merchant string goes into the
// message and the callback payload so the human sees exactly what the
// terminal reported.
func (t *Telegram) NotifyUnknown(ctx context.Context, rawMerchant string) {
	keyboard := inlineKeyboard{}
	encoded := url.QueryEscape(rawMerchant)
	for idx, label := range category.QuickPick() {
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, []inlineButton{{
			Text:         string(label),
			CallbackData: fmt.Sprintf("%s:%s:%d", CallbackPrefix, encoded, idx),
		}})
	}

	markup, err := json.Marshal(keyboard)
	if err != nil {
		t.logger.WithError(err).Warn("Failed to encode unknown-merchant keyboard")
		return
	}

	form := url.Values{}
	form.Set("chat_id", t.chatID)
	form.Set("text", fmt.Sprintf("Unknown merchant: %s\nTap to categorize:", rawMerchant))
	form.Set("reply_markup", string(markup))

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		t.logger.WithError(err).Warn("Failed to build unknown-merchant request")
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.WithError(err).WithField("merchant", rawMerchant).Warn("Unknown-merchant notification failed")
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.logger.WithFields(
			logging.Field{Key: "merchant", Value: rawMerchant},
			logging.Field{Key: "status", Value: resp.StatusCode},
		).Warn("Unknown-merchant notification rejected")
	}
}
