package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroup_Seats(t *testing.T) {
	t.Run("capacity 3 uses first three labels", func(t *testing.T) {
		g := Group{ID: "1", Capacity: 3}
		require.Equal(t, []string{"a", "b", "c"}, g.Seats())
	})

	t.Run("capacity 4 uses the full alphabet", func(t *testing.T) {
		g := Group{ID: "1", Capacity: 4}
		require.Equal(t, []string{"a", "b", "c", "d"}, g.Seats())
	})

	t.Run("out-of-range capacity yields no seats", func(t *testing.T) {
		require.Nil(t, Group{ID: "1", Capacity: 5}.Seats())
		require.Nil(t, Group{ID: "1", Capacity: -1}.Seats())
	})
}

func TestGroup_ValidSeat(t *testing.T) {
	g := Group{ID: "1", Capacity: 3}

	require.True(t, g.ValidSeat("a"))
	require.True(t, g.ValidSeat("c"))
	require.False(t, g.ValidSeat("d"))
	require.False(t, g.ValidSeat(""))
	require.False(t, g.ValidSeat("A"))
}

func TestSeatKey_Compare(t *testing.T) {
	t.Run("orders by group id first", func(t *testing.T) {
		require.Equal(t, -1, SeatKey{"1", "d"}.Compare(SeatKey{"2", "a"}))
		require.Equal(t, 1, SeatKey{"2", "a"}.Compare(SeatKey{"1", "d"}))
	})

	t.Run("orders by seat within a group", func(t *testing.T) {
		require.Equal(t, -1, SeatKey{"1", "a"}.Compare(SeatKey{"1", "b"}))
		require.Equal(t, 0, SeatKey{"1", "b"}.Compare(SeatKey{"1", "b"}))
	})
}
