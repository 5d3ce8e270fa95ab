package cli

import (
	"fmt"

	"github.com/diillson/aws-cost-watch/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
   ____          _    __        __    _       _     
  / ___|___  ___| |_  \ \      / /_ _| |_ ___| |__  
 | |   / _ \/ __| __|  \ \ /\ / / _' | __/ __| '_ \ 
 | |__| (_) \__ \ |_    \ V  V / (_| | || (__| | | |
  \____\___/|___/\__|    \_/\_/ \__,_|\__\___|_| |_|
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))
	fmt.Println(blue(fmt.Sprintf("AWS Cost Watch CLI (v%s)", version.FormatVersion())))
}
