package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarber_CalendarScope(t *testing.T) {
	active := []int64{4, 1, 2}

	own := &Barber{ID: 2, CalendarVisibility: CalendarVisibilityOwn}
	assert.Equal(t, []int64{2}, own.CalendarScope(active))

	all := &Barber{ID: 2, CalendarVisibility: CalendarVisibilityAll}
	assert.Equal(t, []int64{1, 2, 4}, all.CalendarScope(active))

	selected := &Barber{ID: 2, CalendarVisibility: CalendarVisibilitySelected, VisibleBarberIDs: []int64{4, 4}}
	assert.Equal(t, []int64{2, 4}, selected.CalendarScope(active))
}

func TestActor_CanActForBarber(t *testing.T) {
	barber := &Barber{ID: 1, UserID: 100}

	assert.True(t, Actor{UserID: 1, Role: RoleAdmin}.CanActForBarber(barber))
	assert.True(t, Actor{UserID: 100, Role: RoleBarber}.CanActForBarber(barber))
	assert.False(t, Actor{UserID: 101, Role: RoleBarber}.CanActForBarber(barber))
	assert.False(t, Actor{UserID: 100, Role: RoleClient}.CanActForBarber(barber))
	assert.True(t, SystemActor.IsAdmin())
}
