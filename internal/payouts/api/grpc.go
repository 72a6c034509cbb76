package api

import (
	"context"

	"github.com/cicconee/payouts/internal/payouts/app"
	"github.com/cicconee/payouts/internal/platform/logging"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "payouts.v1.PaymentService"

// PaymentServiceServer is the server side of payouts.v1.PaymentService.
// Every method takes and returns a google.protobuf.Struct.
type PaymentServiceServer interface {
	CreatePaymentRequest(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPaymentRequest(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListPaymentRequests(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdatePaymentStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CompletePayment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RejectPayment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeletePaymentRequest(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTotals(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Validate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type structMethod func(PaymentServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PaymentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreatePaymentRequest", PaymentServiceServer.CreatePaymentRequest),
		unary("GetPaymentRequest", PaymentServiceServer.GetPaymentRequest),
		unary("ListPaymentRequests", PaymentServiceServer.ListPaymentRequests),
		unary("UpdatePaymentStatus", PaymentServiceServer.UpdatePaymentStatus),
		unary("CompletePayment", PaymentServiceServer.CompletePayment),
		unary("RejectPayment", PaymentServiceServer.RejectPayment),
		unary("DeletePaymentRequest", PaymentServiceServer.DeletePaymentRequest),
		unary("GetTotals", PaymentServiceServer.GetTotals),
		unary("Validate", PaymentServiceServer.Validate),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "payouts/v1/payment_service",
}

func unary(name string, call structMethod) grpc.MethodDesc {
	fullMethod := FullMethod(name)

	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PaymentServiceServer), ctx, in)
			}

			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(PaymentServiceServer), ctx, req.(*structpb.Struct))
			})
		},
	}
}

// FullMethod returns the path clients invoke for method name.
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func Register(gs *grpc.Server, svc *app.Service, log *logging.Logger) {
	gs.RegisterService(&serviceDesc, NewHandler(svc, log))
}
