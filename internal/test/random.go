package test

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/orderstatus/internal/domain/model"
)

const nameLetters = "abcdefghijklmnopqrstuvwxyz"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomCustomerName returns a capitalized pseudo-random name of 3 to 12 letters.
func RandomCustomerName() string {
	rngMu.Lock()
	defer rngMu.Unlock()

	buf := make([]byte, 3+rng.Intn(10))
	for i := range buf {
		buf[i] = nameLetters[rng.Intn(len(nameLetters))]
	}
	buf[0] -= 'a' - 'A'
	return string(buf)
}

// RandomAcceptedOrder returns an accepted order event and its wire encoding.
func RandomAcceptedOrder() (model.AcceptedOrderEvent, []byte) {
	event := model.AcceptedOrderEvent{ID: uuid.New(), CustomerName: RandomCustomerName()}
	raw, err := json.Marshal(event)
	if err != nil {
		panic(err)
	}
	return event, raw
}
