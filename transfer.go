package tracker

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	SourceHoldingID string
	FromPlatform    string
	ToPlatform      string
	Amount          decimal.Decimal
	Fee             decimal.Decimal

	// SendFullQuantity selects the fee mode: true debits amount plus
	// fee and credits the full amount; false debits the amount and
	// credits amount minus fee.
	SendFullQuantity bool
}

// TransferResult describes one executed transfer. SourceHoldingID is
// captured before the source is possibly deleted on zero balance.
type TransferResult struct {
	SourceHoldingID  string
	TargetHoldingID  string
	FromPlatform     string
	ToPlatform       string
	Amount           decimal.Decimal
	Fee              decimal.Decimal
	CreditedQuantity decimal.Decimal
}

// TransferService moves quantity of one asset between two platform
// holdings of the same user. All validation happens before any mutation;
// the mutations themselves commit atomically so that total quantity is
// conserved across both platforms.
type TransferService struct {
	holdingRepository  HoldingRepository
	platformRepository PlatformRepository
	idService          IDService
	eventService       EventService
	logger             Logger
}

func NewTransferService(
	holdingRepository HoldingRepository,
	platformRepository PlatformRepository,
	idService IDService,
	eventService EventService,
	logger Logger,
) *TransferService {
	return &TransferService{
		holdingRepository:  holdingRepository,
		platformRepository: platformRepository,
		idService:          idService,
		eventService:       eventService,
		logger:             logger,
	}
}

func (ts *TransferService) Transfer(
	userID string,
	request *TransferRequest,
) (*TransferResult, error) {
	source, debit, credit, err := ts.validate(userID, request)
	if err != nil {
		return nil, err
	}

	sourceID := source.ID.String()

	var target *Holding
	err = ts.holdingRepository.Atomically(
		func(repository HoldingRepository) error {
			source.Subtract(debit)

			var err error
			target, err = repository.FindByUserAssetPlatform(
				userID,
				source.AssetID,
				request.ToPlatform,
			)
			if err != nil {
				return fmt.Errorf(
					"could not look up target holding: [%v]",
					err,
				)
			}

			if target != nil {
				target.Add(credit)
			} else {
				target, err = NewHolding(
					ts.idService,
					userID,
					source.AssetID,
					request.ToPlatform,
					credit,
				)
				if err != nil {
					return err
				}
			}

			if source.IsZeroBalance() {
				if err := repository.DeleteByID(sourceID); err != nil {
					return fmt.Errorf(
						"could not delete drained holding [%v]: [%v]",
						sourceID,
						err,
					)
				}

				return repository.Save(target)
			}

			return repository.SaveAll(source, target)
		},
	)
	if err != nil {
		return nil, err
	}

	result := &TransferResult{
		SourceHoldingID:  sourceID,
		TargetHoldingID:  target.ID.String(),
		FromPlatform:     request.FromPlatform,
		ToPlatform:       request.ToPlatform,
		Amount:           request.Amount,
		Fee:              request.Fee,
		CreditedQuantity: credit,
	}

	ts.logger.WithField("userID", userID).Infof(
		"transferred [%v] of asset [%v] from [%v] to [%v]",
		credit,
		source.AssetID,
		request.FromPlatform,
		request.ToPlatform,
	)

	if ts.eventService != nil {
		ts.eventService.Publish(NewTransferExecutedEvent(userID, result))
	}

	return result, nil
}

func (ts *TransferService) validate(
	userID string,
	request *TransferRequest,
) (*Holding, decimal.Decimal, decimal.Decimal, error) {
	fail := func(err error) (*Holding, decimal.Decimal, decimal.Decimal, error) {
		return nil, decimal.Decimal{}, decimal.Decimal{}, err
	}

	if !request.Amount.IsPositive() {
		return fail(NewValidationError(
			"transfer amount must be positive, got [%v]",
			request.Amount,
		))
	}

	if request.Fee.IsNegative() {
		return fail(NewValidationError(
			"transfer fee must not be negative, got [%v]",
			request.Fee,
		))
	}

	if request.FromPlatform == request.ToPlatform {
		return fail(NewConflictError(
			"source and target platforms are the same: [%v]",
			request.FromPlatform,
		))
	}

	if isBlank(request.FromPlatform) || isBlank(request.ToPlatform) {
		return fail(NewValidationError("platform ids must not be blank"))
	}

	exists, err := ts.platformRepository.Exists(request.ToPlatform)
	if err != nil {
		return fail(fmt.Errorf(
			"could not look up platform [%v]: [%v]",
			request.ToPlatform,
			err,
		))
	}

	if !exists {
		return fail(NewNotFoundError(
			"platform [%v] not found",
			request.ToPlatform,
		))
	}

	source, err := ts.holdingRepository.FindByID(request.SourceHoldingID)
	if err != nil {
		return fail(fmt.Errorf(
			"could not look up holding [%v]: [%v]",
			request.SourceHoldingID,
			err,
		))
	}

	// A holding owned by another user is reported the same way as a
	// missing one so that foreign ids do not leak existence.
	if source == nil || source.UserID != userID {
		return fail(NewNotFoundError(
			"holding [%v] not found",
			request.SourceHoldingID,
		))
	}

	if source.Platform != request.FromPlatform {
		return fail(NewBusinessRuleError(
			"holding [%v] is kept on platform [%v], not [%v]",
			request.SourceHoldingID,
			source.Platform,
			request.FromPlatform,
		))
	}

	debit := request.Amount
	credit := request.Amount

	if request.SendFullQuantity {
		debit = request.Amount.Add(request.Fee)
	} else {
		credit = request.Amount.Sub(request.Fee)
	}

	if !source.HasSufficientBalance(debit) {
		return fail(NewBusinessRuleError(
			"insufficient balance on holding [%v]: available [%v], required [%v]",
			request.SourceHoldingID,
			source.Quantity,
			debit,
		))
	}

	if !credit.IsPositive() {
		return fail(NewBusinessRuleError(
			"fee [%v] exceeds transfer amount [%v]",
			request.Fee,
			request.Amount,
		))
	}

	return source, debit, credit, nil
}

func isBlank(value string) bool {
	return len(strings.TrimSpace(value)) == 0
}
