// SPDX-License-Identifier: MPL-2.0

package main

import cmd "archx/cmd/archx"

func main() {
	cmd.Execute()
}
