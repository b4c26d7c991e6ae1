package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ndewijer/investment-goal-tracker/internal/allocator"
	"github.com/ndewijer/investment-goal-tracker/internal/api/request"
	"github.com/ndewijer/investment-goal-tracker/internal/apperrors"
	"github.com/ndewijer/investment-goal-tracker/internal/model"
	"github.com/ndewijer/investment-goal-tracker/internal/repository"
	"github.com/ndewijer/investment-goal-tracker/internal/validation"
)

// GoalService handles the savings goal: setup, edits, monthly completion
// tracking and the dashboard numbers derived from the stored schedule.
type GoalService struct {
	profileRepo      *repository.RecordRepository[model.GoalProfile]
	storeRepo        *repository.StoreRepository
	defaultIncrement int64
	now              func() time.Time
	logger           *log.Logger
}

// NewGoalService creates a new GoalService. defaultIncrement applies to
// requests that do not set a rounding increment.
func NewGoalService(
	profileRepo *repository.RecordRepository[model.GoalProfile],
	storeRepo *repository.StoreRepository,
	defaultIncrement int64,
	logger *log.Logger,
) *GoalService {
	return &GoalService{
		profileRepo:      profileRepo,
		storeRepo:        storeRepo,
		defaultIncrement: defaultIncrement,
		now:              time.Now,
		logger:           logger,
	}
}

// WithClock returns a copy of the service that reads the current time from now.
func (s *GoalService) WithClock(now func() time.Time) *GoalService {
	c := *s
	c.now = now
	return &c
}

// SetupGoal computes the schedule for a new goal and stores it with an empty
// completion set, replacing any goal stored before.
func (s *GoalService) SetupGoal(ctx context.Context, req request.CreateGoalRequest) (model.GoalProfile, error) {
	if err := validation.ValidateCreateGoal(req); err != nil {
		return model.GoalProfile{}, err
	}

	areq, err := s.allocationRequest(req.ScheduleRequest())
	if err != nil {
		return model.GoalProfile{}, err
	}
	res, err := allocator.ComputeSchedule(areq)
	if err != nil {
		return model.GoalProfile{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToComputeSchedule, err)
	}

	now := s.now().UTC()
	profile := model.GoalProfile{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(req.Name),
		Goal:              areq.Goal,
		StartDate:         areq.StartDate,
		EndDate:           areq.EndDate,
		Policy:            areq.Policy,
		RoundingIncrement: areq.RoundingIncrement,
		Schedule:          res.Schedule,
		Adjusted:          res.Adjusted,
		CompletedMonths:   []string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return model.GoalProfile{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveGoal, err)
	}

	s.logger.Info("goal created", "id", profile.ID, "policy", profile.Policy, "months", len(profile.Schedule), "adjusted", profile.Adjusted)
	return profile, nil
}

// GetGoal returns the stored goal or apperrors.ErrGoalNotFound.
func (s *GoalService) GetGoal(ctx context.Context) (model.GoalProfile, error) {
	profile, ok, err := s.profileRepo.Load(ctx)
	if err != nil {
		return model.GoalProfile{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveGoal, err)
	}
	if !ok {
		return model.GoalProfile{}, apperrors.ErrGoalNotFound
	}
	return profile, nil
}

// UpdateGoal applies a partial edit. Changing any allocation parameter
// recomputes the schedule and clears the completed months, since old month
// keys may not exist in the new schedule. A rename keeps both.
func (s *GoalService) UpdateGoal(ctx context.Context, req request.UpdateGoalRequest) (model.GoalProfile, error) {
	if err := validation.ValidateUpdateGoal(req); err != nil {
		return model.GoalProfile{}, err
	}

	profile, err := s.GetGoal(ctx)
	if err != nil {
		return model.GoalProfile{}, err
	}

	if req.Name != nil {
		profile.Name = strings.TrimSpace(*req.Name)
	}

	if req.ChangesSchedule() {
		areq := allocator.Request{
			Goal:              profile.Goal,
			StartDate:         profile.StartDate,
			EndDate:           profile.EndDate,
			Policy:            profile.Policy,
			RoundingIncrement: profile.RoundingIncrement,
		}
		if req.Goal != nil {
			areq.Goal = *req.Goal
		}
		if req.StartDate != nil {
			if areq.StartDate, err = validation.ParseDate(*req.StartDate); err != nil {
				return model.GoalProfile{}, &validation.Error{Fields: map[string]string{"startDate": err.Error()}}
			}
		}
		if req.EndDate != nil {
			if areq.EndDate, err = validation.ParseDate(*req.EndDate); err != nil {
				return model.GoalProfile{}, &validation.Error{Fields: map[string]string{"endDate": err.Error()}}
			}
		}
		if req.Policy != nil {
			if areq.Policy, err = allocator.ParsePolicy(*req.Policy); err != nil {
				return model.GoalProfile{}, &validation.Error{Fields: map[string]string{"policy": err.Error()}}
			}
		}
		if req.RoundingIncrement != nil {
			areq.RoundingIncrement = *req.RoundingIncrement
		}
		if !areq.EndDate.After(areq.StartDate) {
			return model.GoalProfile{}, &validation.Error{Fields: map[string]string{
				"endDate": "endDate must be after startDate",
			}}
		}

		res, err := allocator.ComputeSchedule(areq)
		if err != nil {
			return model.GoalProfile{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToComputeSchedule, err)
		}

		profile.Goal = areq.Goal
		profile.StartDate = areq.StartDate
		profile.EndDate = areq.EndDate
		profile.Policy = areq.Policy
		profile.RoundingIncrement = areq.RoundingIncrement
		profile.Schedule = res.Schedule
		profile.Adjusted = res.Adjusted
		profile.CompletedMonths = []string{}
	}

	profile.UpdatedAt = s.now().UTC()
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return model.GoalProfile{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveGoal, err)
	}

	s.logger.Info("goal updated", "id", profile.ID, "recomputed", req.ChangesSchedule())
	return profile, nil
}

// SetMonthCompleted marks month as invested or not. The schedule itself is
// never changed.
func (s *GoalService) SetMonthCompleted(ctx context.Context, month string, completed bool) (model.GoalProfile, error) {
	return s.updateCompletion(ctx, month, func(bool) bool { return completed })
}

// ToggleMonth flips the completion state of month.
func (s *GoalService) ToggleMonth(ctx context.Context, month string) (model.GoalProfile, error) {
	return s.updateCompletion(ctx, month, func(current bool) bool { return !current })
}

func (s *GoalService) updateCompletion(ctx context.Context, month string, next func(current bool) bool) (model.GoalProfile, error) {
	if err := validation.ValidateMonthKey(month); err != nil {
		return model.GoalProfile{}, err
	}

	profile, err := s.GetGoal(ctx)
	if err != nil {
		return model.GoalProfile{}, err
	}
	if !profile.Schedule.Contains(month) {
		return model.GoalProfile{}, fmt.Errorf("%w: %s", apperrors.ErrMonthNotInSchedule, month)
	}

	current := profile.IsCompleted(month)
	want := next(current)
	if want == current {
		return profile, nil
	}

	if want {
		profile.CompletedMonths = append(profile.CompletedMonths, month)
		slices.Sort(profile.CompletedMonths)
	} else {
		profile.CompletedMonths = slices.DeleteFunc(profile.CompletedMonths, func(m string) bool { return m == month })
	}
	profile.UpdatedAt = s.now().UTC()

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return model.GoalProfile{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSaveGoal, err)
	}

	s.logger.Debug("month completion changed", "month", month, "completed", want)
	return profile, nil
}

// Progress returns the dashboard numbers for the stored goal.
func (s *GoalService) Progress(ctx context.Context) (model.GoalProgress, error) {
	profile, err := s.GetGoal(ctx)
	if err != nil {
		return model.GoalProgress{}, err
	}

	total := allocator.TotalInvested(profile.Schedule, profile.CompletedMonths)

	months := make([]model.MonthStatus, len(profile.Schedule))
	remainingMonths := 0
	for i, e := range profile.Schedule {
		done := profile.IsCompleted(e.Month)
		if !done {
			remainingMonths++
		}
		months[i] = model.MonthStatus{Month: e.Month, Amount: e.Amount, Completed: done}
	}

	return model.GoalProgress{
		Name:            profile.Name,
		Goal:            profile.Goal,
		TotalInvested:   total,
		ProgressPercent: allocator.ProgressPercent(total, profile.Goal),
		Remaining:       allocator.Remaining(profile.Goal, total),
		RemainingMonths: remainingMonths,
		CurrentMonth:    allocator.MonthKey(s.now().UTC()),
		Months:          months,
	}, nil
}

// Preview computes a schedule without storing anything.
func (s *GoalService) Preview(_ context.Context, req request.ScheduleRequest) (model.SchedulePreview, error) {
	if err := validation.ValidateScheduleRequest(req, true); err != nil {
		return model.SchedulePreview{}, err
	}

	areq, err := s.allocationRequest(req)
	if err != nil {
		return model.SchedulePreview{}, err
	}
	res, err := allocator.ComputeSchedule(areq)
	if err != nil {
		return model.SchedulePreview{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToComputeSchedule, err)
	}
	return buildPreview(areq, res), nil
}

// ComparePolicies computes the fixed and growing schedules for the same goal.
func (s *GoalService) ComparePolicies(ctx context.Context, req request.ScheduleRequest) (model.PolicyComparison, error) {
	if err := validation.ValidateScheduleRequest(req, false); err != nil {
		return model.PolicyComparison{}, err
	}

	req.Policy = string(allocator.Fixed)
	fixed, err := s.allocationRequest(req)
	if err != nil {
		return model.PolicyComparison{}, err
	}
	growing := fixed
	growing.Policy = allocator.Growing

	results, err := allocator.ComputeBatch(ctx, []allocator.Request{fixed, growing})
	if err != nil {
		return model.PolicyComparison{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToComputeSchedule, err)
	}

	return model.PolicyComparison{
		Fixed:   buildPreview(fixed, results[0]),
		Growing: buildPreview(growing, results[1]),
	}, nil
}

// ClearGoal removes the stored goal and its completion history.
func (s *GoalService) ClearGoal(ctx context.Context) error {
	if err := s.profileRepo.Clear(ctx); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToClearData, err)
	}
	s.logger.Info("goal cleared")
	return nil
}

// ClearAll removes every stored record: goal, notification settings and app config.
func (s *GoalService) ClearAll(ctx context.Context) error {
	n, err := s.storeRepo.ClearAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToClearData, err)
	}
	s.logger.Info("all data cleared", "records", n)
	return nil
}

// allocationRequest converts a validated request into allocator input.
func (s *GoalService) allocationRequest(req request.ScheduleRequest) (allocator.Request, error) {
	start, err := validation.ParseDate(req.StartDate)
	if err != nil {
		return allocator.Request{}, err
	}
	end, err := validation.ParseDate(req.EndDate)
	if err != nil {
		return allocator.Request{}, err
	}
	policy, err := allocator.ParsePolicy(req.Policy)
	if err != nil {
		return allocator.Request{}, err
	}

	increment := s.defaultIncrement
	if req.RoundingIncrement != nil {
		increment = *req.RoundingIncrement
	}

	return allocator.Request{
		Goal:              req.Goal,
		StartDate:         start,
		EndDate:           end,
		Policy:            policy,
		RoundingIncrement: increment,
	}, nil
}

func buildPreview(req allocator.Request, res allocator.Result) model.SchedulePreview {
	preview := model.SchedulePreview{
		Policy:     req.Policy,
		MonthCount: len(res.Schedule),
		Schedule:   res.Schedule,
		Preview:    allocator.Preview(res.Schedule),
		Adjusted:   res.Adjusted,
	}
	if estimate, ok := allocator.MonthlyEstimate(req); ok {
		preview.MonthlyEstimate = &estimate
	}
	return preview
}

// IsAllocationError reports whether err came from invalid allocation input.
func IsAllocationError(err error) bool {
	return errors.Is(err, allocator.ErrInvalidGoal) ||
		errors.Is(err, allocator.ErrInvalidDateRange) ||
		errors.Is(err, allocator.ErrUnsupportedPolicy) ||
		errors.Is(err, allocator.ErrInvalidRoundingIncrement)
}
