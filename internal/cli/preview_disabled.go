//go:build nopreview

package cli

import "github.com/spf13/cobra"

const previewEnabled = false

func (c *CLI) addPreview(*cobra.Command) {}
