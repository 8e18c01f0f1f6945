package services_test

import (
	"context"
	"testing"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/core/services"
	"github.com/expensio/expensio_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DepartmentServiceTestSuite struct {
	suite.Suite
	mockDepartmentRepo *MockDepartmentRepository
	mockUserRepo       *MockUserRepository
	service            portssvc.DepartmentSvcFacade

	admin   domain.User
	manager domain.User
}

func (suite *DepartmentServiceTestSuite) SetupTest() {
	suite.mockDepartmentRepo = new(MockDepartmentRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewDepartmentService(suite.mockDepartmentRepo, suite.mockUserRepo)

	suite.admin = domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin}
	suite.manager = domain.User{UserID: uuid.NewString(), Role: domain.RoleManager}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.admin.UserID).Return(&suite.admin, nil).Maybe()
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.manager.UserID).Return(&suite.manager, nil).Maybe()
}

func (suite *DepartmentServiceTestSuite) TestUpdateDepartmentBudget_Success() {
	ctx := context.Background()
	departmentID := uuid.NewString()
	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, departmentID).
		Return(&domain.Department{DepartmentID: departmentID, Name: "Engineering"}, nil).Once()
	suite.mockDepartmentRepo.On("UpdateDepartmentBudget", ctx, departmentID,
		decimal.NewFromInt(2000), decimal.NewFromInt(24000), suite.admin.UserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	req := dto.UpdateDepartmentBudgetRequest{
		MonthlyBudget: decimal.NewFromInt(2000),
		AnnualBudget:  decimal.NewFromInt(24000),
	}
	department, err := suite.service.UpdateDepartmentBudget(ctx, departmentID, req, suite.admin.UserID)

	suite.Require().NoError(err)
	suite.True(department.MonthlyBudget.Equal(decimal.NewFromInt(2000)))
	suite.mockDepartmentRepo.AssertExpectations(suite.T())
}

func (suite *DepartmentServiceTestSuite) TestUpdateDepartmentBudget_NegativeRejected() {
	ctx := context.Background()
	req := dto.UpdateDepartmentBudgetRequest{
		MonthlyBudget: decimal.NewFromInt(-1),
		AnnualBudget:  decimal.NewFromInt(24000),
	}

	_, err := suite.service.UpdateDepartmentBudget(ctx, uuid.NewString(), req, suite.admin.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNegativeBudget)
	suite.mockDepartmentRepo.AssertNotCalled(suite.T(), "UpdateDepartmentBudget",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DepartmentServiceTestSuite) TestUpdateDepartmentBudget_ZeroAllowed() {
	ctx := context.Background()
	departmentID := uuid.NewString()
	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, departmentID).
		Return(&domain.Department{DepartmentID: departmentID}, nil).Once()
	suite.mockDepartmentRepo.On("UpdateDepartmentBudget", ctx, departmentID,
		decimal.Zero, decimal.Zero, suite.admin.UserID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	req := dto.UpdateDepartmentBudgetRequest{MonthlyBudget: decimal.Zero, AnnualBudget: decimal.Zero}
	_, err := suite.service.UpdateDepartmentBudget(ctx, departmentID, req, suite.admin.UserID)

	suite.Require().NoError(err)
}

func (suite *DepartmentServiceTestSuite) TestUpdateDepartmentBudget_NonAdminForbidden() {
	ctx := context.Background()
	req := dto.UpdateDepartmentBudgetRequest{
		MonthlyBudget: decimal.NewFromInt(2000),
		AnnualBudget:  decimal.NewFromInt(24000),
	}

	_, err := suite.service.UpdateDepartmentBudget(ctx, uuid.NewString(), req, suite.manager.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestDepartmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DepartmentServiceTestSuite))
}
