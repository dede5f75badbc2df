package jobs

import (
	"context"
	"fmt"
	"strings"

	"carrental-backend/internal/logger"
	"carrental-backend/internal/utils"
)

// AuditRateCards checks every car's rate card and reports data problems to the admin
func (jr *JobRunner) AuditRateCards() {
	_ = jr.runWithRecovery(JobAuditRateCards, jr.auditRateCards)
}

func (jr *JobRunner) auditRateCards(ctx context.Context) error {
	cars, err := jr.cars.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cars: %w", err)
	}

	counts := make(map[string]int)
	var report strings.Builder
	affected := 0
	for _, car := range cars {
		issues := utils.ValidateRateCard(car.RateCard)
		if len(issues) == 0 {
			continue
		}
		affected++
		fmt.Fprintf(&report, "Car %d (%s):\n", car.ID, car.Name)
		for _, issue := range issues {
			counts[string(issue.Code)]++
			logger.WarnContext(ctx, "Rate card issue",
				"car_id", car.ID,
				"code", issue.Code,
				"tier", issue.Tier,
				"message", issue.Message)
			fmt.Fprintf(&report, "  - %s\n", issue)
		}
	}
	jr.metrics.SetRateCardIssues(counts)

	logger.InfoContext(ctx, "Rate card audit finished", "cars", len(cars), "cars_with_issues", affected)
	if affected == 0 {
		return nil
	}

	adminEmail := jr.config.Email.AdminEmail
	if adminEmail == "" {
		logger.WarnContext(ctx, "No admin email configured, audit report not sent")
		return nil
	}
	subject := fmt.Sprintf("Rate card audit: %d of %d cars need attention", affected, len(cars))
	if err := jr.services.Email.SendAdminNotification(ctx, adminEmail, subject, report.String()); err != nil {
		return fmt.Errorf("failed to send audit report: %w", err)
	}
	return nil
}
