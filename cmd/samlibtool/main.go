// Copyright (c) sambuild contributors. All rights reserved.
// Licensed under the MIT License.

package main

import "github.com/sambuild/samlib/cmd/samlibtool/command"

func main() {
	command.Execute()
}
