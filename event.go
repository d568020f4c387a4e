package tracker

import "fmt"

type Event struct {
	UserID  string
	Payload string
}

func NewTransferExecutedEvent(userID string, result *TransferResult) *Event {
	return &Event{
		UserID: userID,
		Payload: fmt.Sprintf(
			"Transfer has been executed:\n"+
				"- From platform: %v\n"+
				"- To platform: %v\n"+
				"- Amount: %v\n"+
				"- Fee: %v\n"+
				"- Credited quantity: %v",
			result.FromPlatform,
			result.ToPlatform,
			result.Amount,
			result.Fee,
			result.CreditedQuantity,
		),
	}
}

type EventService interface {
	Publish(event *Event)
}
