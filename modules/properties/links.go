package properties

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/comfortcurators/portal/pkg/spotlight"
)

const NewPropertyPath = "/app/property/new"

var AddPropertyCommand = spotlight.NewCommand(
	icons.PlusCircle(icons.Props{Size: "16"}),
	"Spotlight.AddProperty",
	NewPropertyPath,
)
