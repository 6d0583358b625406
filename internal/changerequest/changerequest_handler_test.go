package changerequest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrcore/internal/changerequest"
	changerequesterrors "go-hrcore/internal/changerequest/errors"
	"go-hrcore/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeChangeRequestService struct {
	submitFn          func(ctx context.Context, employeeProfileID string, req changerequest.CreateChangeRequest) (changerequest.ChangeRequestResponse, error)
	approveFn         func(ctx context.Context, id string) (changerequest.ChangeRequestResponse, error)
	rejectFn          func(ctx context.Context, id, reason string) (changerequest.ChangeRequestResponse, error)
	withdrawFn        func(ctx context.Context, id string) (changerequest.WithdrawResponse, error)
	listByEmployeeFn  func(ctx context.Context, employeeProfileID string) ([]changerequest.ChangeRequestResponse, error)
	listAllFn         func(ctx context.Context) ([]changerequest.ChangeRequestResponse, error)
	findByRequestIDFn func(ctx context.Context, requestID string) (changerequest.ChangeRequestResponse, error)
	submitDisputeFn   func(ctx context.Context, originalID string, req changerequest.CreateDisputeRequest) (changerequest.ChangeRequestResponse, error)
	resolveDisputeFn  func(ctx context.Context, id, resolution string) (changerequest.ChangeRequestResponse, error)
	approveDisputeFn  func(ctx context.Context, id, resolution string) (changerequest.ChangeRequestResponse, error)
}

func (f *fakeChangeRequestService) Submit(ctx context.Context, employeeProfileID string, req changerequest.CreateChangeRequest) (changerequest.ChangeRequestResponse, error) {
	if f.submitFn != nil {
		return f.submitFn(ctx, employeeProfileID, req)
	}
	return changerequest.ChangeRequestResponse{}, nil
}

func (f *fakeChangeRequestService) Approve(ctx context.Context, id string) (changerequest.ChangeRequestResponse, error) {
	if f.approveFn != nil {
		return f.approveFn(ctx, id)
	}
	return changerequest.ChangeRequestResponse{}, nil
}

func (f *fakeChangeRequestService) Reject(ctx context.Context, id, reason string) (changerequest.ChangeRequestResponse, error) {
	if f.rejectFn != nil {
		return f.rejectFn(ctx, id, reason)
	}
	return changerequest.ChangeRequestResponse{}, nil
}

func (f *fakeChangeRequestService) Withdraw(ctx context.Context, id string) (changerequest.WithdrawResponse, error) {
	if f.withdrawFn != nil {
		return f.withdrawFn(ctx, id)
	}
	return changerequest.WithdrawResponse{}, nil
}

func (f *fakeChangeRequestService) ListByEmployee(ctx context.Context, employeeProfileID string) ([]changerequest.ChangeRequestResponse, error) {
	if f.listByEmployeeFn != nil {
		return f.listByEmployeeFn(ctx, employeeProfileID)
	}
	return nil, nil
}

func (f *fakeChangeRequestService) ListAll(ctx context.Context) ([]changerequest.ChangeRequestResponse, error) {
	if f.listAllFn != nil {
		return f.listAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeChangeRequestService) FindByRequestID(ctx context.Context, requestID string) (changerequest.ChangeRequestResponse, error) {
	if f.findByRequestIDFn != nil {
		return f.findByRequestIDFn(ctx, requestID)
	}
	return changerequest.ChangeRequestResponse{}, nil
}

func (f *fakeChangeRequestService) SubmitDispute(ctx context.Context, originalID string, req changerequest.CreateDisputeRequest) (changerequest.ChangeRequestResponse, error) {
	if f.submitDisputeFn != nil {
		return f.submitDisputeFn(ctx, originalID, req)
	}
	return changerequest.ChangeRequestResponse{}, nil
}

func (f *fakeChangeRequestService) ResolveDispute(ctx context.Context, id, resolution string) (changerequest.ChangeRequestResponse, error) {
	if f.resolveDisputeFn != nil {
		return f.resolveDisputeFn(ctx, id, resolution)
	}
	return changerequest.ChangeRequestResponse{}, nil
}

func (f *fakeChangeRequestService) ApproveDispute(ctx context.Context, id, resolution string) (changerequest.ChangeRequestResponse, error) {
	if f.approveDisputeFn != nil {
		return f.approveDisputeFn(ctx, id, resolution)
	}
	return changerequest.ChangeRequestResponse{}, nil
}

func (f *fakeChangeRequestService) UseDisputePropagation(p changerequest.DisputePropagation) {}

func setupChangeRequestRouter(svc changerequest.Service, actorID, role string) (*gin.Engine, *changerequest.Handler) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("employee_profile_id", actorID)
		c.Set("role", role)
		c.Next()
	})
	return router, changerequest.NewHandler(svc)
}

func TestChangeRequestHandler_Submit(t *testing.T) {
	actorID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeChangeRequestService{
			submitFn: func(ctx context.Context, employeeProfileID string, req changerequest.CreateChangeRequest) (changerequest.ChangeRequestResponse, error) {
				assert.Equal(t, actorID, employeeProfileID)
				assert.Equal(t, "firstName", req.Field)
				return changerequest.ChangeRequestResponse{
					ID:     uuid.New().String(),
					Status: changerequest.StatusPending,
					Field:  req.Field,
				}, nil
			},
		}
		router, handler := setupChangeRequestRouter(svc, actorID, domain.RoleDepartmentEmployee)
		router.POST("/change-requests", handler.Submit)

		body, _ := json.Marshal(changerequest.CreateChangeRequest{
			Field:    "firstName",
			NewValue: "Aya",
		})
		req := httptest.NewRequest(http.MethodPost, "/change-requests", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var res map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, true, res["ok"])
		assert.Equal(t, "PENDING", res["data"].(map[string]interface{})["status"])
	})

	t.Run("negative field outside enum", func(t *testing.T) {
		svc := &fakeChangeRequestService{}
		router, handler := setupChangeRequestRouter(svc, actorID, domain.RoleDepartmentEmployee)
		router.POST("/change-requests", handler.Submit)

		body := []byte(`{"field":"salary","newValue":"100000"}`)
		req := httptest.NewRequest(http.MethodPost, "/change-requests", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestChangeRequestHandler_Decisions(t *testing.T) {
	actorID := uuid.New().String()

	t.Run("approve already processed maps to conflict", func(t *testing.T) {
		svc := &fakeChangeRequestService{
			approveFn: func(ctx context.Context, id string) (changerequest.ChangeRequestResponse, error) {
				return changerequest.ChangeRequestResponse{}, changerequesterrors.ErrAlreadyProcessed
			},
		}
		router, handler := setupChangeRequestRouter(svc, actorID, domain.RoleHRManager)
		router.PATCH("/change-requests/:id/approve", handler.Approve)

		req := httptest.NewRequest(http.MethodPatch, "/change-requests/"+uuid.New().String()+"/approve", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var res map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Equal(t, false, res["ok"])
	})

	t.Run("reject requires reason", func(t *testing.T) {
		svc := &fakeChangeRequestService{}
		router, handler := setupChangeRequestRouter(svc, actorID, domain.RoleHRManager)
		router.PATCH("/change-requests/:id/reject", handler.Reject)

		req := httptest.NewRequest(http.MethodPatch, "/change-requests/"+uuid.New().String()+"/reject", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("withdraw returns correlation id", func(t *testing.T) {
		requestID := uuid.New().String()
		svc := &fakeChangeRequestService{
			withdrawFn: func(ctx context.Context, id string) (changerequest.WithdrawResponse, error) {
				return changerequest.WithdrawResponse{
					Message:   "Change request withdrawn successfully",
					RequestID: requestID,
					Status:    changerequest.StatusRejected,
				}, nil
			},
		}
		router, handler := setupChangeRequestRouter(svc, actorID, domain.RoleDepartmentEmployee)
		router.PATCH("/change-requests/:id/withdraw", handler.Withdraw)

		req := httptest.NewRequest(http.MethodPatch, "/change-requests/"+uuid.New().String()+"/withdraw", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		data := res["data"].(map[string]interface{})
		assert.Equal(t, requestID, data["request_id"])
		assert.Equal(t, "REJECTED", data["status"])
	})
}

func TestChangeRequestHandler_ListByEmployee(t *testing.T) {
	actorID := uuid.New().String()

	t.Run("employee reads own history", func(t *testing.T) {
		svc := &fakeChangeRequestService{
			listByEmployeeFn: func(ctx context.Context, employeeProfileID string) ([]changerequest.ChangeRequestResponse, error) {
				assert.Equal(t, actorID, employeeProfileID)
				return []changerequest.ChangeRequestResponse{{ID: uuid.New().String()}}, nil
			},
		}
		router, handler := setupChangeRequestRouter(svc, actorID, domain.RoleDepartmentEmployee)
		router.GET("/change-requests/by-employee/:employeeProfileId", handler.ListByEmployee)

		req := httptest.NewRequest(http.MethodGet, "/change-requests/by-employee/"+actorID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative employee reads someone else", func(t *testing.T) {
		svc := &fakeChangeRequestService{
			listByEmployeeFn: func(ctx context.Context, employeeProfileID string) ([]changerequest.ChangeRequestResponse, error) {
				t.Fatal("service must not be reached")
				return nil, nil
			},
		}
		router, handler := setupChangeRequestRouter(svc, actorID, domain.RoleDepartmentEmployee)
		router.GET("/change-requests/by-employee/:employeeProfileId", handler.ListByEmployee)

		req := httptest.NewRequest(http.MethodGet, "/change-requests/by-employee/"+uuid.New().String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("hr reads any employee", func(t *testing.T) {
		targetID := uuid.New().String()
		svc := &fakeChangeRequestService{
			listByEmployeeFn: func(ctx context.Context, employeeProfileID string) ([]changerequest.ChangeRequestResponse, error) {
				assert.Equal(t, targetID, employeeProfileID)
				return nil, nil
			},
		}
		router, handler := setupChangeRequestRouter(svc, actorID, domain.RoleHRManager)
		router.GET("/change-requests/by-employee/:employeeProfileId", handler.ListByEmployee)

		req := httptest.NewRequest(http.MethodGet, "/change-requests/by-employee/"+targetID, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestChangeRequestHandler_Disputes(t *testing.T) {
	actorID := uuid.New().String()

	t.Run("submit dispute", func(t *testing.T) {
		originalID := uuid.New().String()
		svc := &fakeChangeRequestService{
			submitDisputeFn: func(ctx context.Context, id string, req changerequest.CreateDisputeRequest) (changerequest.ChangeRequestResponse, error) {
				assert.Equal(t, originalID, id)
				assert.Equal(t, "the decision missed my documents", req.Dispute)
				return changerequest.ChangeRequestResponse{
					Kind:   changerequest.KindDispute,
					Status: changerequest.StatusPending,
				}, nil
			},
		}
		router, handler := setupChangeRequestRouter(svc, actorID, domain.RoleDepartmentEmployee)
		router.POST("/change-requests/:id/dispute", handler.SubmitDispute)

		body, _ := json.Marshal(changerequest.CreateDisputeRequest{
			EmployeeProfileID: actorID,
			Dispute:           "the decision missed my documents",
		})
		req := httptest.NewRequest(http.MethodPost, "/change-requests/"+originalID+"/dispute", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("negative dispute on undecided original", func(t *testing.T) {
		svc := &fakeChangeRequestService{
			submitDisputeFn: func(ctx context.Context, id string, req changerequest.CreateDisputeRequest) (changerequest.ChangeRequestResponse, error) {
				return changerequest.ChangeRequestResponse{}, changerequesterrors.ErrOriginalNotDecided
			},
		}
		router, handler := setupChangeRequestRouter(svc, actorID, domain.RoleDepartmentEmployee)
		router.POST("/change-requests/:id/dispute", handler.SubmitDispute)

		body, _ := json.Marshal(changerequest.CreateDisputeRequest{
			EmployeeProfileID: actorID,
			Dispute:           "premature",
		})
		req := httptest.NewRequest(http.MethodPost, "/change-requests/"+uuid.New().String()+"/dispute", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("resolve dispute passes resolution", func(t *testing.T) {
		svc := &fakeChangeRequestService{
			resolveDisputeFn: func(ctx context.Context, id, resolution string) (changerequest.ChangeRequestResponse, error) {
				assert.Equal(t, "original decision stands", resolution)
				return changerequest.ChangeRequestResponse{Status: changerequest.StatusRejected}, nil
			},
		}
		router, handler := setupChangeRequestRouter(svc, actorID, domain.RoleHRManager)
		router.PATCH("/change-requests/:id/resolve-dispute", handler.ResolveDispute)

		body, _ := json.Marshal(changerequest.ResolveDisputeRequest{Resolution: "original decision stands"})
		req := httptest.NewRequest(http.MethodPatch, "/change-requests/"+uuid.New().String()+"/resolve-dispute", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
