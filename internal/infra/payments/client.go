package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client создаёт checkout-сессии Stripe. Нам из ответа нужен только URL,
// по которому пользователь оплачивает подписку на стороне Stripe.
type Client struct {
	secretKey   string
	priceID     string
	botUsername string
	apiURL      string
	httpClient  *http.Client
}

func NewClient(secretKey, priceID, botUsername string) *Client {
	return &Client{
		secretKey:   secretKey,
		priceID:     priceID,
		botUsername: botUsername,
		apiURL:      "https://api.stripe.com/v1",
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateCheckoutSession открывает подписочную сессию для пользователя.
// client_reference_id = telegram user_id — по нему вебхук checkout.session.completed
// поймёт, кому включать премиум. Ссылки возврата ведут обратно в чат
// через deep-link /start.
func (c *Client) CreateCheckoutSession(ctx context.Context, userID int64) (string, error) {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("line_items[0][price]", c.priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("client_reference_id", strconv.FormatInt(userID, 10))
	form.Set("success_url", fmt.Sprintf("https://t.me/%s?start=payment_success", c.botUsername))
	form.Set("cancel_url", fmt.Sprintf("https://t.me/%s?start=payment_cancel", c.botUsername))
	form.Set("allow_promotion_codes", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("create checkout session: unexpected status %s", resp.Status)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("create checkout session: empty url in response")
	}
	return out.URL, nil
}
