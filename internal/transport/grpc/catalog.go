package grpc_server

import (
	"context"
	"errors"
	"log"
	"time"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "lms.catalog.v1.CourseCatalog"

	getCourseMethod            = "/" + ServiceName + "/GetCourse"
	listAvailableCoursesMethod = "/" + ServiceName + "/ListAvailableCourses"
)

// CatalogService is the read-only course catalog. Messages use the protobuf
// well-known types so no generated code is needed.
type CatalogService interface {
	GetCourse(ctx context.Context, id *wrapperspb.StringValue) (*structpb.Struct, error)
	ListAvailableCourses(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error)
}

// CourseSource is satisfied by usecase.CourseUseCase.
type CourseSource interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	Available(ctx context.Context) ([]domain.Course, error)
}

type CatalogServer struct {
	courses CourseSource
}

func NewCatalogServer(courses CourseSource) *CatalogServer {
	return &CatalogServer{courses: courses}
}

func (s *CatalogServer) GetCourse(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	id, err := uuid.Parse(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid course id")
	}
	course, err := s.courses.Get(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := courseStruct(course)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode course")
	}
	return out, nil
}

func (s *CatalogServer) ListAvailableCourses(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	courses, err := s.courses.Available(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(courses))}
	for i := range courses {
		c, err := courseStruct(&courses[i])
		if err != nil {
			return nil, status.Error(codes.Internal, "encode course")
		}
		list.Values = append(list.Values, structpb.NewStructValue(c))
	}
	return list, nil
}

func courseStruct(c *domain.Course) (*structpb.Struct, error) {
	fields := map[string]any{
		"id":              c.ID.String(),
		"title":           c.Title,
		"description":     c.Description,
		"code":            c.Code,
		"active":          c.Active,
		"published":       c.Published,
		"maxEnrollments":  nil,
		"startDate":       nil,
		"endDate":         nil,
		"enrollmentCount": c.EnrollmentCount,
		"enrollmentFull":  c.IsEnrollmentFull(),
		"enrollmentOpen":  c.IsEnrollmentOpen(),
	}
	if c.MaxEnrollments != nil {
		fields["maxEnrollments"] = *c.MaxEnrollments
	}
	if c.StartDate != nil {
		fields["startDate"] = c.StartDate.Format(time.RFC3339)
	}
	if c.EndDate != nil {
		fields["endDate"] = c.EndDate.Format(time.RFC3339)
	}
	return structpb.NewStruct(fields)
}

func toStatus(err error) error {
	switch {
	case domain.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return status.Error(codes.AlreadyExists, err.Error())
	default:
		log.Printf("catalog: %v", err)
		return status.Error(codes.Internal, "internal error")
	}
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogService)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetCourse", Handler: getCourseHandler},
		{MethodName: "ListAvailableCourses", Handler: listAvailableCoursesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lms/catalog/v1/catalog.proto",
}

func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogService) {
	s.RegisterService(&catalogServiceDesc, srv)
}

func getCourseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogService).GetCourse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getCourseMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogService).GetCourse(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func listAvailableCoursesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogService).ListAvailableCourses(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listAvailableCoursesMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogService).ListAvailableCourses(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// CatalogClient calls a remote CourseCatalog.
type CatalogClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogClient(cc grpc.ClientConnInterface) *CatalogClient {
	return &CatalogClient{cc: cc}
}

func (c *CatalogClient) GetCourse(ctx context.Context, id string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getCourseMethod, wrapperspb.String(id), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CatalogClient) ListAvailableCourses(ctx context.Context, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, listAvailableCoursesMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// NewServer builds a gRPC server carrying the catalog, health and reflection
// services. The returned health server is flipped to NOT_SERVING on shutdown.
func NewServer(courses CourseSource) (*grpc.Server, *health.Server) {
	s := grpc.NewServer()
	RegisterCatalogServer(s, NewCatalogServer(courses))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(s)
	return s, healthServer
}
