// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"archx/pkg/archive"

	"github.com/spf13/cobra"
)

// formatsCmd lists the formats the built-in codecs understand.
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported archive formats",
	Long: `List the archive and compression formats the built-in codecs support,
with their recognized filename extensions.

Formats not listed here can still be handled by delegating to an
external tool with --program.`,
	RunE: runFormats,
}

func runFormats(cmd *cobra.Command, args []string) error {
	fmt.Println(TitleStyle.Render("Supported Formats"))
	fmt.Println()

	for _, f := range archive.Formats() {
		fmt.Printf("%s %-10s %s\n", infoIcon, CmdStyle.Render(f.Name), strings.Join(f.Extensions, " "))
	}

	fmt.Println()
	fmt.Printf("%s External tools via --program: 7z, unzip, unrar, tar\n", infoIcon)
	return nil
}
