package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/grovetools/catalogd/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddThenList(t *testing.T) {
	testCases := []struct {
		name string
		seed []models.Cat
		cat  models.Cat
	}{
		{"empty store", nil, models.NewCat("Tom", models.ColourBlack, "")},
		{"seeded store", SampleCats(), models.NewCat("Garfield", models.ColourGinger, "https://example.com/g.png", "Garf")},
		{"duplicate of a seed entry", SampleCats(), SampleCats()[0]},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(tc.seed...)
			before := s.List()

			s.Add(tc.cat)

			after := s.List()
			require.Len(t, after, len(before)+1)
			assert.True(t, after[len(after)-1].Equal(tc.cat))
			for i := range before {
				assert.True(t, before[i].Equal(after[i]), "existing entries keep their position")
			}
		})
	}
}

func TestListIsIdempotent(t *testing.T) {
	s := New(SampleCats()...)
	assert.Equal(t, s.List(), s.List())
}

func TestListReturnsSnapshot(t *testing.T) {
	s := New(models.NewCat("Tom", models.ColourGrey, "", "Thomas"))

	snapshot := s.List()
	snapshot[0].Name = "Jerry"
	snapshot[0].Nicknames[0] = "Mouse"

	fresh := s.List()
	assert.Equal(t, "Tom", fresh[0].Name)
	assert.Equal(t, "Thomas", fresh[0].Nicknames[0])
}

func TestEmptyStoreListsEmptySlice(t *testing.T) {
	s := New()
	list := s.List()
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestConcurrentAddAndList(t *testing.T) {
	s := New()
	const writers, perWriter = 8, 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(2)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				s.Add(models.NewCat(fmt.Sprintf("cat-%d-%d", w, i), models.ColourTabby, ""))
			}
		}(w)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_ = s.List()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, s.Len())
}

func TestSubscribe(t *testing.T) {
	s := New()
	ch := s.Subscribe()
	assert.Equal(t, 1, s.Subscribers())

	cat := models.NewCat("Salem", models.ColourBlack, "")
	s.Add(cat)

	u := <-ch
	assert.Equal(t, UpdateCatAdded, u.Type)
	assert.True(t, u.Cat.Equal(cat))
	assert.Equal(t, 1, u.Len)

	s.Unsubscribe(ch)
	assert.Equal(t, 0, s.Subscribers())
	_, open := <-ch
	assert.False(t, open, "unsubscribe closes the channel")

	// A second unsubscribe is a no-op
	s.Unsubscribe(ch)
}

func TestSlowSubscriberDoesNotBlockAdd(t *testing.T) {
	s := New()
	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	for i := 0; i < cap(ch)+10; i++ {
		s.Add(models.NewCat("spam", models.ColourWhite, ""))
	}
	assert.Equal(t, cap(ch)+10, s.Len())
	assert.Len(t, ch, cap(ch))
}
