// package bridge serves an indicator over grpc, for hosts that are not written in Go;
// the host sends a frame per redraw and rasterizes the returned commands itself.
package bridge

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/hujun-open/dashbook/indicator"
	"github.com/hujun-open/dashbook/wire"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	ServiceName   = "dashbook.Indicator"
	methodRender  = "/" + ServiceName + "/Render"
	methodInsets  = "/" + ServiceName + "/Insets"
	methodConfig  = "/" + ServiceName + "/Configure"
	rpcTimeout    = 10 * time.Second
	DefaultListen = "127.0.0.1:30000"
)

// IndicatorServer is what the grpc service dispatches to
type IndicatorServer interface {
	Render(context.Context, *wire.Frame) (*wire.Commands, error)
	Insets(context.Context, *wire.Empty) (*wire.Insets, error)
	Configure(context.Context, *wire.Settings) (*wire.Empty, error)
}

// Server owns one indicator, every call holds the lock
type Server struct {
	mux *sync.Mutex
	ind *indicator.Indicator
}

func NewServer(ind *indicator.Indicator) *Server {
	return &Server{mux: new(sync.Mutex), ind: ind}
}

func (s *Server) Render(ctx context.Context, f *wire.Frame) (*wire.Commands, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	return &wire.Commands{List: s.ind.Render(f.Frame)}, nil
}

func (s *Server) Insets(ctx context.Context, _ *wire.Empty) (*wire.Insets, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	return &wire.Insets{Insets: s.ind.Insets()}, nil
}

func (s *Server) Configure(ctx context.Context, set *wire.Settings) (*wire.Empty, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	set.Apply(s.ind)
	return &wire.Empty{}, nil
}

func unaryHandler[Req any, PReq interface {
	*Req
	wire.Message
}](method string, call func(IndicatorServer, context.Context, PReq) (interface{}, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(IndicatorServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(IndicatorServer), ctx, req.(PReq))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IndicatorServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler[wire.Frame]("Render", func(s IndicatorServer, ctx context.Context, in *wire.Frame) (interface{}, error) {
			return s.Render(ctx, in)
		}),
		unaryHandler[wire.Empty]("Insets", func(s IndicatorServer, ctx context.Context, in *wire.Empty) (interface{}, error) {
			return s.Insets(ctx, in)
		}),
		unaryHandler[wire.Settings]("Configure", func(s IndicatorServer, ctx context.Context, in *wire.Settings) (interface{}, error) {
			return s.Configure(ctx, in)
		}),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dashbook/indicator",
}

// Register adds the indicator service to gs
func Register(gs *grpc.Server, srv IndicatorServer) {
	gs.RegisterService(&serviceDesc, srv)
}

// NewGRPCServer returns a grpc server speaking the bridge codec
func NewGRPCServer(srv IndicatorServer, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ForceServerCodec(codec{}))
	gs := grpc.NewServer(opts...)
	Register(gs, srv)
	return gs
}

// Serve blocks serving srv on addr until ctx is done
func Serve(ctx context.Context, addr string, srv IndicatorServer) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %v, %w", addr, err)
	}
	gs := NewGRPCServer(srv)
	go func() {
		<-ctx.Done()
		gs.GracefulStop()
	}()
	log.Printf("indicator bridge listening on %v", lis.Addr())
	return gs.Serve(lis)
}

// Client calls a remote indicator
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to a bridge server; extra options are appended to the defaults
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(codec{})),
	}, opts...)
	conn, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection to indicator bridge, %w", err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, in, out wire.Message) error {
	ctx, cancel := context.WithTimeout(ctx, rpcTimeout)
	defer cancel()
	return c.conn.Invoke(ctx, method, in, out)
}

func (c *Client) Render(ctx context.Context, f indicator.Frame) ([]indicator.DrawCommand, error) {
	out := new(wire.Commands)
	if err := c.invoke(ctx, methodRender, &wire.Frame{Frame: f}, out); err != nil {
		return nil, err
	}
	return out.List, nil
}

func (c *Client) Insets(ctx context.Context) (indicator.Insets, error) {
	out := new(wire.Insets)
	if err := c.invoke(ctx, methodInsets, &wire.Empty{}, out); err != nil {
		return indicator.Insets{}, err
	}
	return out.Insets, nil
}

func (c *Client) Configure(ctx context.Context, s *wire.Settings) error {
	return c.invoke(ctx, methodConfig, s, new(wire.Empty))
}
