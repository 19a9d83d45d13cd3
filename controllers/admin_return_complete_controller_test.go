package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGatewayAmount(t *testing.T) {
	t.Run("rounds instead of truncating", func(t *testing.T) {
		// 0.29*100 is 28.999... in float64; truncation would pay 28
		assert.Equal(t, 29, gatewayAmount(0.29))
		assert.Equal(t, 4515, gatewayAmount(45.15))
		assert.Equal(t, 5801, gatewayAmount(58.01))
	})

	t.Run("exact amounts pass through", func(t *testing.T) {
		assert.Equal(t, 9000, gatewayAmount(90.00))
		assert.Equal(t, 0, gatewayAmount(0))
		assert.Equal(t, 50, gatewayAmount(0.50))
	})
}
