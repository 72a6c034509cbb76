package api

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/cicconee/payouts/internal/payouts/app"
	"github.com/cicconee/payouts/internal/platform/grpcserver"
	"github.com/cicconee/payouts/internal/platform/logging"
	"github.com/cicconee/payouts/internal/platform/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	validIBAN    = "ES9121000418450200051332"
	badCheckIBAN = "ES0012345678901234567890"
)

type testClient struct {
	t    *testing.T
	conn *grpc.ClientConn
}

func (c testClient) call(method string, in map[string]any) (map[string]any, error) {
	c.t.Helper()

	req, err := structpb.NewStruct(in)
	require.NoError(c.t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, FullMethod(method), req, out); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

func startGRPC(t *testing.T) (testClient, *app.Service) {
	t.Helper()

	log := logging.NewNop()
	svc := app.NewService(nil)
	lis := bufconn.Listen(1 << 20)

	srv, err := grpcserver.New(grpcserver.Options{Listener: lis, GracefulStopTimeout: time.Second}, log,
		func(gs *grpc.Server) {
			Register(gs, svc, log)
		},
	)
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(log) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		srv.GracefulStop(log)
		require.NoError(t, <-errCh)
	})

	return testClient{t: t, conn: conn}, svc
}

func draftFields(amount any) map[string]any {
	return map[string]any{
		"artist_id":      1,
		"artist_name":    "Ana",
		"first_name":     "Ana",
		"last_name":      "Gómez",
		"amount":         amount,
		"method":         "PayPal",
		"account_number": "ES91 2100 0418 4502 0005 1332",
	}
}

func TestGRPCCreateAndGet(t *testing.T) {
	c, _ := startGRPC(t)

	created, err := c.call("CreatePaymentRequest", draftFields(500))
	require.NoError(t, err)
	assert.Equal(t, "500", created["amount"])
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, "ES91 2100 0418 4502 0005 1332", created["account_number"])

	got, err := c.call("GetPaymentRequest", map[string]any{"id": created["id"]})
	require.NoError(t, err)
	assert.Equal(t, created, got)

	totals, err := c.call("GetTotals", nil)
	require.NoError(t, err)
	assert.Equal(t, "500", totals["pending"])
	assert.Equal(t, float64(1), totals["pending_count"])
}

func TestGRPCCreateValidationFailure(t *testing.T) {
	c, svc := startGRPC(t)

	fields := draftFields("abc")
	fields["account_number"] = badCheckIBAN

	_, err := c.call("CreatePaymentRequest", fields)
	require.Error(t, err)

	st := status.Convert(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, validation.MsgIBANChecksum, st.Message())

	require.Len(t, st.Details(), 1)
	br, ok := st.Details()[0].(*errdetails.BadRequest)
	require.True(t, ok)
	assert.Equal(t, app.FieldAccountNumber, br.GetFieldViolations()[0].GetField())

	// A valid IBAN moves the failure on to the unparsable amount.
	fields["account_number"] = validIBAN
	_, err = c.call("CreatePaymentRequest", fields)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, validation.MsgAmountNotPositive, status.Convert(err).Message())

	assert.Empty(t, svc.PaymentRequests())
}

func TestGRPCStatusTransitions(t *testing.T) {
	c, _ := startGRPC(t)

	created, err := c.call("CreatePaymentRequest", draftFields("250.50"))
	require.NoError(t, err)
	id := created["id"]

	done, err := c.call("CompletePayment", map[string]any{"id": id})
	require.NoError(t, err)
	assert.Equal(t, "completed", done["status"])

	back, err := c.call("UpdatePaymentStatus", map[string]any{"id": id, "status": "pending"})
	require.NoError(t, err)
	assert.Equal(t, "pending", back["status"])

	rejected, err := c.call("RejectPayment", map[string]any{"id": id})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected["status"])

	_, err = c.call("UpdatePaymentStatus", map[string]any{"id": id, "status": "paid"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = c.call("CompletePayment", map[string]any{"id": 42})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = c.call("GetPaymentRequest", map[string]any{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPCListAndDelete(t *testing.T) {
	c, svc := startGRPC(t)

	first, err := c.call("CreatePaymentRequest", draftFields(10))
	require.NoError(t, err)

	other := draftFields(20)
	other["artist_id"] = 2
	second, err := c.call("CreatePaymentRequest", other)
	require.NoError(t, err)

	_, err = c.call("CompletePayment", map[string]any{"id": first["id"]})
	require.NoError(t, err)

	all, err := c.call("ListPaymentRequests", nil)
	require.NoError(t, err)
	items := all["payment_requests"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, second["id"], items[0].(map[string]any)["id"], "most recent first")

	pending, err := c.call("ListPaymentRequests", map[string]any{"status": "pending"})
	require.NoError(t, err)
	require.Len(t, pending["payment_requests"], 1)

	byArtist, err := c.call("ListPaymentRequests", map[string]any{"artist_id": 1, "status": "pending"})
	require.NoError(t, err)
	assert.Empty(t, byArtist["payment_requests"])

	zero := draftFields(30)
	zero["artist_id"] = 0
	zeroCreated, err := c.call("CreatePaymentRequest", zero)
	require.NoError(t, err)

	byZero, err := c.call("ListPaymentRequests", map[string]any{"artist_id": 0})
	require.NoError(t, err)
	zeroItems := byZero["payment_requests"].([]any)
	require.Len(t, zeroItems, 1)
	assert.Equal(t, zeroCreated["id"], zeroItems[0].(map[string]any)["id"])

	res, err := c.call("DeletePaymentRequest", map[string]any{"id": first["id"]})
	require.NoError(t, err)
	assert.Equal(t, true, res["deleted"])

	res, err = c.call("DeletePaymentRequest", map[string]any{"id": first["id"]})
	require.NoError(t, err)
	assert.Equal(t, false, res["deleted"])

	assert.Len(t, svc.PaymentRequests(), 2)
}

func TestGRPCValidate(t *testing.T) {
	c, _ := startGRPC(t)

	res, err := c.call("Validate", map[string]any{"kind": "iban", "value": "es91 2100 0418 4502 0005 1332"})
	require.NoError(t, err)
	assert.Equal(t, true, res["valid"])
	assert.Equal(t, "ES91 2100 0418 4502 0005 1332", res["formatted"])

	res, err = c.call("Validate", map[string]any{"kind": "date_range", "value": "2024-01-10", "end": "2024-01-05"})
	require.NoError(t, err)
	assert.Equal(t, false, res["valid"])
	assert.Equal(t, validation.MsgDateRange, res["error"])

	res, err = c.call("Validate", map[string]any{"kind": "percentage", "value": 150})
	require.NoError(t, err)
	assert.Equal(t, validation.MsgPercentage, res["error"])

	_, err = c.call("Validate", map[string]any{"kind": "vat"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
