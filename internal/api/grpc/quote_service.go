package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	QuoteServiceName     = "carrental.v1.QuoteService"
	QuoteFullMethod      = "/" + QuoteServiceName + "/Quote"
	PriceSheetFullMethod = "/" + QuoteServiceName + "/PriceSheet"
)

// QuoteServiceServer is the server side of carrental.v1.QuoteService. Requests
// and responses are google.protobuf.Struct documents; money values travel as
// decimal strings.
type QuoteServiceServer interface {
	Quote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	PriceSheet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var QuoteServiceDesc = grpc.ServiceDesc{
	ServiceName: QuoteServiceName,
	HandlerType: (*QuoteServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Quote", Handler: quoteHandler},
		{MethodName: "PriceSheet", Handler: priceSheetHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterQuoteServiceServer(s grpc.ServiceRegistrar, srv QuoteServiceServer) {
	s.RegisterService(&QuoteServiceDesc, srv)
}

func quoteHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QuoteServiceServer).Quote(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: QuoteFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QuoteServiceServer).Quote(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func priceSheetHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(QuoteServiceServer).PriceSheet(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PriceSheetFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(QuoteServiceServer).PriceSheet(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// QuoteServiceClient calls carrental.v1.QuoteService.
type QuoteServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewQuoteServiceClient(cc grpc.ClientConnInterface) *QuoteServiceClient {
	return &QuoteServiceClient{cc: cc}
}

func (c *QuoteServiceClient) Quote(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, QuoteFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *QuoteServiceClient) PriceSheet(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PriceSheetFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
