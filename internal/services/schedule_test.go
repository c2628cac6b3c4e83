package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextBusinessDay(t *testing.T) {
	// Wednesday -> Thursday
	wed := time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), nextBusinessDay(wed))

	// Friday -> Monday
	fri := time.Date(2024, 3, 8, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), nextBusinessDay(fri))

	// Saturday -> Monday
	sat := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), nextBusinessDay(sat))

	// Sunday -> Monday
	sun := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), nextBusinessDay(sun))
}

func TestLuhnValid(t *testing.T) {
	assert.True(t, luhnValid("4242424242424242"))
	assert.True(t, luhnValid("4111111111111111"))
	assert.False(t, luhnValid("4242424242424243"))
	assert.False(t, luhnValid("1234567812345678"))
}

func TestCardExpired(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	// Valid through the end of the expiry month.
	assert.False(t, cardExpired(6, 2024, now))
	assert.False(t, cardExpired(7, 2024, now))
	assert.True(t, cardExpired(5, 2024, now))
	assert.True(t, cardExpired(12, 2023, now))

	// Two-digit years read as 20xx.
	assert.False(t, cardExpired(1, 30, now))
	assert.True(t, cardExpired(1, 20, now))
}

func TestCardLast4(t *testing.T) {
	assert.Equal(t, "4242", cardLast4("4242424242424242"))
	assert.Equal(t, "", cardLast4("42"))
}
