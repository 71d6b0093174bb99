// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	kderrors "github.com/NVIDIA/kubedeploy/pkg/errors"
	"github.com/NVIDIA/kubedeploy/pkg/serializer"
)

// HTTPStatusFromCode maps an error code to the HTTP status it should be
// served with. Unknown codes map to 500.
func HTTPStatusFromCode(code kderrors.ErrorCode) int {
	switch code {
	case kderrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case kderrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case kderrors.ErrCodeNotFound:
		return http.StatusNotFound
	case kderrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case kderrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case kderrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case kderrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// retryableFromCode reports whether a client could reasonably retry the
// request carrying this code.
func retryableFromCode(code kderrors.ErrorCode) bool {
	switch code {
	case kderrors.ErrCodeTimeout,
		kderrors.ErrCodeUnavailable,
		kderrors.ErrCodeRateLimitExceeded,
		kderrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails combines two detail maps, with the second winning on key
// collisions. Returns nil when there is nothing to report.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	merged := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	return merged
}

// WriteError writes a structured error response
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code kderrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := requestIDFrom(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr derives the response from the error itself: status,
// retryability, and details come from the StructuredError in err's chain.
// Plain errors fall back to an internal error with the given message.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, details map[string]any) {

	code := kderrors.ErrCodeInternal
	message := fallbackMessage
	var errDetails map[string]any

	var serr *kderrors.StructuredError
	if stderrors.As(err, &serr) {
		code = serr.Code
		message = serr.Message
		errDetails = serr.Context
		if serr.Cause != nil {
			errDetails = mergeDetails(errDetails, map[string]any{"error": serr.Cause.Error()})
		}
	} else if err != nil {
		errDetails = map[string]any{"error": err.Error()}
	}

	WriteError(w, r, HTTPStatusFromCode(code), code, message,
		retryableFromCode(code), mergeDetails(errDetails, details))
}
