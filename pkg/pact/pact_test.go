package pact

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPactVerifySucceedsWhenEveryInteractionIsExercised(t *testing.T) {
	p := NewPact("consumer", "provider")
	p.AddInteraction("a request for mallory").
		Given("mallory exists").
		WithRequest("GET", "/mallory").
		WillRespondWith(200).
		WithResponseHeader("Content-Type", "application/json").
		WithResponseJSONBody(map[string]interface{}{
			"name": Like("mallory"),
			"age":  Integer(42),
		})

	err := p.Verify(func(baseURL string) error {
		resp, err := http.Get(baseURL + "/mallory")
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != 200 {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestPactVerifyFailsWhenInteractionUnexercised(t *testing.T) {
	p := NewPact("consumer", "provider")
	p.AddInteraction("a request never made").
		WithRequest("GET", "/never").
		WillRespondWith(200)

	err := p.Verify(func(baseURL string) error { return nil })
	assert.Error(t, err)
}

func TestEachLikeMatcherSatisfiesVariableLengthArray(t *testing.T) {
	p := NewPact("consumer", "provider")
	p.AddInteraction("a list of items").
		WithRequest("GET", "/items").
		WillRespondWith(200).
		WithResponseJSONBody(map[string]interface{}{
			"items": EachLike(map[string]interface{}{"id": Integer(1)}, 1),
		})

	err := p.Verify(func(baseURL string) error {
		resp, err := http.Get(baseURL + "/items")
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != 200 {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestMessagePactReifiesGeneratedBody(t *testing.T) {
	mp := NewMessagePact("consumer", "provider")
	msg := mp.AddMessage("an order placed event").
		Given("an order exists").
		WithJSONContents(map[string]interface{}{
			"orderId": Integer(1),
			"status":  Like("placed"),
		})
	require.NoError(t, msg.Error())

	var out struct {
		OrderID int    `json:"orderId"`
		Status  string `json:"status"`
	}
	require.NoError(t, msg.Reify(&out))
	assert.Equal(t, 1, out.OrderID)
	assert.Equal(t, "placed", out.Status)
}

func TestAddMessageAllowsMultipleDistinctMessages(t *testing.T) {
	mp := NewMessagePact("consumer", "provider")
	one := mp.AddMessage("first event").WithJSONContents(map[string]interface{}{"n": 1})
	two := mp.AddMessage("second event").WithJSONContents(map[string]interface{}{"n": 2})
	require.NoError(t, one.Error())
	require.NoError(t, two.Error())

	var first, second struct {
		N int `json:"n"`
	}
	require.NoError(t, one.Reify(&first))
	require.NoError(t, two.Reify(&second))
	assert.Equal(t, 1, first.N)
	assert.Equal(t, 2, second.N)
}
