// Command passwd prints an ADMIN_PASSWORD_HASH value for a password typed
// at the terminal.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/cryptox"
	"github.com/dmitrijs2005/filekeeper/internal/prompt"
)

func main() {
	pw, err := prompt.GetNewPassword(os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer common.WipeByteArray(pw)

	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", cryptox.HashPassword(pw))
}
