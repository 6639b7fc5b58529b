package stream

import (
	"errors"
	"fmt"
)

// UserToken signs a client credential for userID, valid for the configured TTL.
func (c *Client) UserToken(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	now := c.now()
	token, err := c.chat.CreateToken(userID, now.Add(c.tokenTTL), now)
	if err != nil {
		return "", fmt.Errorf("sign user token: %w", err)
	}
	return token, nil
}
