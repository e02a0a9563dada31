package base

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
)

type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonGhost     ButtonVariant = "ghost"
	ButtonOutline   ButtonVariant = "outline"
)

type ButtonSize string

const (
	ButtonSizeNormal ButtonSize = "normal"
	ButtonSizeSmall  ButtonSize = "sm"
	ButtonSizeLarge  ButtonSize = "lg"
	ButtonSizeIcon   ButtonSize = "icon"
)

const buttonBase = "inline-flex items-center justify-center gap-2 rounded-md text-sm font-medium transition-colors focus-visible:outline-none focus-visible:ring-2 disabled:pointer-events-none disabled:opacity-50"

var buttonVariants = map[ButtonVariant]string{
	ButtonPrimary:   "bg-primary text-primary-foreground hover:bg-primary/90",
	ButtonSecondary: "bg-secondary text-secondary-foreground hover:bg-secondary/80",
	ButtonGhost:     "hover:bg-accent hover:text-accent-foreground",
	ButtonOutline:   "border border-input bg-background hover:bg-accent",
}

var buttonSizes = map[ButtonSize]string{
	ButtonSizeNormal: "h-10 px-4 py-2",
	ButtonSizeSmall:  "h-9 px-3",
	ButtonSizeLarge:  "h-11 px-8 text-base",
	ButtonSizeIcon:   "h-10 w-10",
}

// ButtonClass merges the variant and size classes with extra, later classes winning conflicts.
func ButtonClass(variant ButtonVariant, size ButtonSize, extra ...string) string {
	classes := append([]string{buttonBase, buttonVariants[variant], buttonSizes[size]}, extra...)
	return twmerge.Merge(classes...)
}
