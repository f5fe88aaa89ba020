package display

import (
	"errors"
	"testing"

	"github.com/alovak/cardflow-swipe/internal/track2"
	"github.com/stretchr/testify/require"
)

func TestMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&track2.DecodeError{Kind: track2.KindFraming}, MsgFraming},
		{&track2.DecodeError{Kind: track2.KindParity}, MsgParity},
		{&track2.DecodeError{Kind: track2.KindChecksum}, MsgChecksum},
		{&track2.DecodeError{Kind: track2.KindFormat, Detail: "missing start sentinel"}, MsgFormat},
		{errors.New("boom"), MsgUnknown},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Message(c.err))
	}
}

func TestFor(t *testing.T) {
	raw, err := track2.Encode(";4000123456789010=29051019990000?", track2.EncodeOptions{SilenceBytes: 1})
	require.NoError(t, err)

	got := For(track2.Decode(raw))
	require.Equal(t, Fields{
		CardID:     "4000 1234 5678 9010",
		Expiration: "05/29",
		Extra:      "9990000",
	}, got)

	got = For(track2.Decode(raw[:3]))
	require.Equal(t, Fields{CardID: ErrorTitle, Extra: MsgFraming}, got)

	got = For(track2.Decode("FFFF"))
	require.Equal(t, Fields{CardID: ErrorTitle, Extra: MsgFormat}, got)
}

func TestForCard_Expiration(t *testing.T) {
	card, err := track2.Parse(";4000123456789010=29051019990000?")
	require.NoError(t, err)
	require.Equal(t, "05/29", ForCard(card).Expiration)

	// month 13 cannot be on a card face, show the digits as read
	card, err = track2.Parse(";4000123456789010=29131019990000?")
	require.NoError(t, err)
	require.Equal(t, "13/29", ForCard(card).Expiration)
}
