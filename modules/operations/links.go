package operations

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/comfortcurators/portal/pkg/spotlight"
)

const NewTicketPath = "/app/tickets/new"

var CreateTicketCommand = spotlight.NewCommand(
	icons.PlusCircle(icons.Props{Size: "16"}),
	"Spotlight.CreateTicket",
	NewTicketPath,
)
