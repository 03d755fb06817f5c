package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
)

func TestStore_DispatchNotifiesOnChangeOnly(t *testing.T) {
	st := New(nil)
	calls := 0
	unsub := st.Subscribe(func(*State) { calls++ })

	st.Dispatch(ToggleDarkMode{})
	st.Dispatch(Unknown{Name: "X"})
	assert.Equal(t, 1, calls)

	unsub()
	st.Dispatch(ToggleDarkMode{})
	assert.Equal(t, 1, calls)
	assert.False(t, st.State().IsDarkMode)
}

func TestStore_ConcurrentDispatchIsSerialized(t *testing.T) {
	st := New(nil)
	p := model.Product{ID: "5", Name: "Tomato", Price: 60}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Dispatch(AddToCart{Product: p})
		}()
	}
	wg.Wait()

	s := st.State()
	assert.Len(t, s.Cart, 1)
	assert.Equal(t, 50, s.Cart[0].Quantity)
	assert.Equal(t, float64(3000), CartTotal(s))
}
