package git

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// IsRepository checks whether the current directory is inside a Git
// repository.
func IsRepository() bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	return cmd.Run() == nil
}

// UpdateGitignore ensures that the given entries are present in .gitignore.
// Outside a Git repository it prints a reminder and returns nil.
func UpdateGitignore(entries []string) error {
	if !IsRepository() {
		fmt.Println("\nNote: Not inside a Git repository. If you initialize one later,")
		fmt.Printf("remember to add the following to your .gitignore: %s\n", strings.Join(entries, ", "))
		return nil
	}

	file, err := os.OpenFile(".gitignore", os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("could not open or create .gitignore: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("could not seek in .gitignore: %w", err)
	}

	existing := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		existing[strings.TrimSpace(scanner.Text())] = true
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading .gitignore: %w", err)
	}

	var added []string
	for _, entry := range entries {
		if existing[entry] {
			continue
		}
		if _, err := file.WriteString("\n" + entry); err != nil {
			return fmt.Errorf("failed to write to .gitignore: %w", err)
		}
		added = append(added, entry)
	}

	if len(added) > 0 {
		fmt.Printf("\n✓ Added the following entries to .gitignore: %s\n", strings.Join(added, ", "))
	} else {
		fmt.Println("\n✓ .gitignore already contains the necessary entries.")
	}
	fmt.Println("This prevents committing credentials, plan files and local database data.")

	return nil
}
