package readerdev_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/alovak/cardflow-swipe/internal/logging"
	"github.com/alovak/cardflow-swipe/internal/readerdev"
	"github.com/alovak/cardflow-swipe/internal/track2"
	"github.com/alovak/cardflow-swipe/reader"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestClient_Decode(t *testing.T) {
	router := chi.NewRouter()
	reader.NewAPI(reader.NewService(logging.Discard(), reader.DefaultConfig())).AppendRoutes(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	cli := readerdev.New(srv.URL+"/", nil)

	raw, err := track2.Encode(";4000123456789010=29051019990000?", track2.EncodeOptions{})
	require.NoError(t, err)

	res, err := cli.Decode(context.Background(), raw)
	require.NoError(t, err)
	require.Nil(t, res.Error)
	require.Equal(t, "05/29", res.Display.Expiration)

	res, err = cli.Decode(context.Background(), "FFZZ")
	require.NoError(t, err)
	require.Equal(t, "framing", res.Error.Kind)

	_, err = cli.Decode(context.Background(), "")
	require.Error(t, err)
}
