package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchToSubscribers(t *testing.T) {
	m := NewManager()

	var got []string
	m.Subscribe(TypeChange, func(e Event) bool {
		got = append(got, "first")
		return false
	})
	m.Subscribe(TypeChange, func(e Event) bool {
		got = append(got, "second")
		return false
	})
	m.Subscribe(TypeSave, func(e Event) bool {
		got = append(got, "save")
		return false
	})

	m.Dispatch(TypeChange, nil)
	assert.Equal(t, []string{"first", "second"}, got, "handlers run in subscription order")
}

func TestDispatchCarriesData(t *testing.T) {
	m := NewManager()

	var got SaveData
	m.Subscribe(TypeSave, func(e Event) bool {
		got = e.Data.(SaveData)
		return false
	})

	m.Dispatch(TypeSave, SaveData{Content: "<p>x</p>"})
	assert.Equal(t, "<p>x</p>", got.Content)
}

func TestDispatchWithNoHandlers(t *testing.T) {
	m := NewManager()
	assert.NotPanics(t, func() {
		m.Dispatch(TypeState, nil)
	})
}

func TestSubscribeDuringDispatch(t *testing.T) {
	m := NewManager()

	calls := 0
	m.Subscribe(TypeChange, func(e Event) bool {
		calls++
		// Subscribing from inside a handler must not affect this dispatch.
		m.Subscribe(TypeChange, func(Event) bool {
			calls++
			return false
		})
		return false
	})

	m.Dispatch(TypeChange, nil)
	assert.Equal(t, 1, calls)
}
