// Package report exposes the growth report use cases over gRPC.
//
// Messages are google.protobuf.Struct values, so the service needs no
// generated code: the ServiceDesc below is registered by hand and Client
// invokes the methods by name.
package report

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "salesgrowth.v1.ReportService"

// Full method names.
const (
	GenerateReportMethod = "/" + ServiceName + "/GenerateReport"
	GetReportMethod      = "/" + ServiceName + "/GetReport"
	ListReportsMethod    = "/" + ServiceName + "/ListReports"
)

// ReportServiceServer is the server API for the report service.
type ReportServiceServer interface {
	GenerateReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListReports(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the report service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReportServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GenerateReport", GenerateReportMethod, ReportServiceServer.GenerateReport),
		unary("GetReport", GetReportMethod, ReportServiceServer.GetReport),
		unary("ListReports", ListReportsMethod, ReportServiceServer.ListReports),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "salesgrowth/v1/report.proto",
}

// RegisterReportServiceServer registers srv with s.
func RegisterReportServiceServer(s grpc.ServiceRegistrar, srv ReportServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type unaryCall func(ReportServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name, fullMethod string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ReportServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(ReportServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Client calls the report service over a client connection.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a report service client.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) GenerateReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GenerateReportMethod, in, opts...)
}

func (c *Client) GetReport(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetReportMethod, in, opts...)
}

func (c *Client) ListReports(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ListReportsMethod, in, opts...)
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
