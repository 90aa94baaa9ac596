package utils

import (
	"github.com/common-nighthawk/go-figure"
)

func DrawBanner() {
	figure.NewColorFigure("budget doctor", "", "blue", true).Print()
}
