// Package grpcreport carries serialized chains across gRPC.
//
// The sending side turns a chain into a status whose message is the
// chain's message and whose details hold the chain's JSON encoding,
// byte for byte, as a google.protobuf.BytesValue. The outer failure is
// never re-encoded on the way, so it arrives exactly as its own
// MarshalJSON wrote it:
//
//	func (s *Server) GetProfile(ctx context.Context, req *pb.GetProfileRequest) (*pb.Profile, error) {
//	    profile, d := s.profiles.Load(ctx, req.GetId())
//	    if d != nil {
//	        return nil, grpcreport.Error(codes.Unavailable, d)
//	    }
//	    return profile, nil
//	}
//
// The receiving side reads the items back into a decay.Report:
//
//	report, ok, err := grpcreport.FromError[*FetchError](err)
package grpcreport

import (
	"encoding/json"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/secureworks/decay"
)

// Status returns a status with code, the chain's message and the
// chain's items attached as a detail. Errors from serializing the chain
// are returned as is.
func Status[O error](code codes.Code, d *decay.Decay[O]) (*status.Status, error) {
	byt, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return status.New(code, d.Error()).WithDetails(wrapperspb.Bytes(byt))
}

// Error is Status returned as an error, ready to be returned from a
// handler. When the chain cannot be serialized the status carries the
// message only.
func Error[O error](code codes.Code, d *decay.Decay[O]) error {
	if d == nil {
		return nil
	}
	st, err := Status(code, d)
	if err != nil {
		return status.Error(code, d.Error())
	}
	return st.Err()
}

// FromStatus reads the report attached by Status. The second result is
// false when the status carries no report.
func FromStatus[O error](st *status.Status) (decay.Report[O], bool, error) {
	for _, detail := range st.Details() {
		items, ok := detail.(*wrapperspb.BytesValue)
		if !ok {
			continue
		}
		var report decay.Report[O]
		if err := json.Unmarshal(items.GetValue(), &report); err != nil {
			return nil, true, err
		}
		return report, true, nil
	}
	return nil, false, nil
}

// FromError reads the report carried by a gRPC error. The second result
// is false when err is not a status error or carries no report.
func FromError[O error](err error) (decay.Report[O], bool, error) {
	st, ok := status.FromError(err)
	if !ok {
		return nil, false, nil
	}
	return FromStatus[O](st)
}
