package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/sessionflow/internal/model"
	"github.com/mcoot/sessionflow/internal/testutil"
)

var alice = model.User{UserID: "u1", FullName: "Alice", Email: "a@b.com"}

func TestNewStoreStartsAnonymous(t *testing.T) {
	store := NewStore(testutil.NopLogger())

	record := store.Current()
	assert.False(t, record.IsAuthenticated())
	assert.True(t, record.Equal(model.Anonymous()))
}

func TestReplaceCommitsBeforeNotifying(t *testing.T) {
	store := NewStore(testutil.NopLogger())

	var seen model.SessionRecord
	store.Subscribe(func(prev, next model.SessionRecord) {
		// the committed value is visible to observers
		seen = store.Current()
		assert.False(t, prev.IsAuthenticated())
		assert.True(t, next.IsAuthenticated())
	})

	store.Replace(model.Authenticated(alice))

	assert.Equal(t, model.UserID("u1"), seen.UserID())
	assert.Equal(t, model.UserID("u1"), store.Current().UserID())
}

func TestObserversRunInSubscriptionOrder(t *testing.T) {
	store := NewStore(testutil.NopLogger())

	var order []int
	for i := range 3 {
		store.Subscribe(func(_, _ model.SessionRecord) {
			order = append(order, i)
		})
	}

	store.Replace(model.Authenticated(alice))
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestUnsubscribeStopsFutureNotifications(t *testing.T) {
	store := NewStore(testutil.NopLogger())

	calls := 0
	unsubscribe := store.Subscribe(func(_, _ model.SessionRecord) { calls++ })

	store.Replace(model.Authenticated(alice))
	unsubscribe()
	store.Replace(model.Anonymous())

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, store.SubscriberCount())

	// a second call is a no-op
	unsubscribe()
	assert.Equal(t, 0, store.SubscriberCount())
}

func TestUnsubscribeDuringNotificationSkipsLaterObserver(t *testing.T) {
	store := NewStore(testutil.NopLogger())

	var unsubscribeSecond func()
	secondCalls := 0

	store.Subscribe(func(_, _ model.SessionRecord) { unsubscribeSecond() })
	unsubscribeSecond = store.Subscribe(func(_, _ model.SessionRecord) { secondCalls++ })

	store.Replace(model.Authenticated(alice))
	assert.Equal(t, 0, secondCalls)
}

func TestPanickingObserverDoesNotBlockOthers(t *testing.T) {
	store := NewStore(testutil.NopLogger())

	called := false
	store.Subscribe(func(_, _ model.SessionRecord) { panic("boom") })
	store.Subscribe(func(_, _ model.SessionRecord) { called = true })

	require.NotPanics(t, func() { store.Replace(model.Authenticated(alice)) })
	assert.True(t, called)
	assert.True(t, store.Current().IsAuthenticated())
}

func TestReplaceIsFullReplacement(t *testing.T) {
	store := NewStore(testutil.NopLogger())

	user := alice
	store.Replace(model.Authenticated(user))

	// mutating the caller's copy does not leak into the store
	user.FullName = "Mallory"
	got, ok := store.Current().User()
	require.True(t, ok)
	assert.Equal(t, "Alice", got.FullName)
}

func TestConcurrentReplacesNotifyInCommitOrder(t *testing.T) {
	store := NewStore(testutil.NopLogger())

	var mu sync.Mutex
	var lastSeen model.SessionRecord
	store.Subscribe(func(prev, next model.SessionRecord) {
		mu.Lock()
		defer mu.Unlock()
		// each notification starts from the record the previous one ended on
		assert.True(t, prev.Equal(lastSeen))
		lastSeen = next
	})

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				store.Replace(model.Authenticated(alice))
			} else {
				store.Replace(model.Anonymous())
			}
			record := store.Current()
			assert.True(t, record.IsAuthenticated() || record.Equal(model.Anonymous()))
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, lastSeen.Equal(store.Current()))
}
