package cmd

import (
	"fmt"
	"strings"
)

// commandNames lists the subcommands offered by shell completion.
var commandNames = []string{
	"add", "ls", "list", "done", "complete", "rm", "remove", "clear",
	"stats", "tui", "doctor", "config", "schema", "completion", "version", "help",
}

// completionCommand prints a completion script for the given shell.
func (a *app) completionCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tasks completion <bash|zsh|fish|powershell>")
	}

	var script string
	switch strings.ToLower(args[0]) {
	case "bash":
		script = bashCompletion()
	case "zsh":
		script = zshCompletion()
	case "fish":
		script = fishCompletion()
	case "powershell", "pwsh":
		script = powershellCompletion()
	default:
		return fmt.Errorf("unsupported shell %q (expected bash, zsh, fish or powershell)", args[0])
	}
	_, err := fmt.Fprint(a.out, script)
	return err
}

func bashCompletion() string {
	return fmt.Sprintf(`# tasks bash completion
_tasks() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    case "$prev" in
        ls|list)
            COMPREPLY=($(compgen -W "all pending completed" -- "$cur"))
            return ;;
        -p|-priority)
            COMPREPLY=($(compgen -W "low medium high" -- "$cur"))
            return ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish powershell" -- "$cur"))
            return ;;
        -file|-schema)
            COMPREPLY=($(compgen -f -- "$cur"))
            return ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=($(compgen -W "-file -schema -log-level -log-format -h -v" -- "$cur"))
        return
    fi
    COMPREPLY=($(compgen -W "%s" -- "$cur"))
}
complete -F _tasks tasks
`, strings.Join(commandNames, " "))
}

func zshCompletion() string {
	return fmt.Sprintf(`#compdef tasks
# tasks zsh completion

_tasks() {
    local -a commands
    commands=(%s)

    _arguments -C \
        '-file[Path to task file]:file:_files' \
        '-schema[JSON Schema override]:file:_files' \
        '-log-level[Log level]:level:(debug info warn error)' \
        '-log-format[Log format]:format:(text json logfmt)' \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands ;;
        args)
            case $words[1] in
                ls|list) _values 'filter' all pending completed ;;
                add) _arguments '-p[Priority]:priority:(low medium high)' ;;
                completion) _values 'shell' bash zsh fish powershell ;;
            esac ;;
    esac
}

_tasks "$@"
`, strings.Join(commandNames, " "))
}

func fishCompletion() string {
	var b strings.Builder
	b.WriteString("# tasks fish completion\n")
	b.WriteString("complete -c tasks -f\n")
	fmt.Fprintf(&b, "complete -c tasks -n '__fish_use_subcommand' -a '%s'\n", strings.Join(commandNames, " "))
	b.WriteString("complete -c tasks -n '__fish_seen_subcommand_from ls list' -a 'all pending completed'\n")
	b.WriteString("complete -c tasks -n '__fish_seen_subcommand_from add' -s p -a 'low medium high' -d 'Priority'\n")
	b.WriteString("complete -c tasks -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish powershell'\n")
	b.WriteString("complete -c tasks -o file -r -F -d 'Path to task file'\n")
	b.WriteString("complete -c tasks -o log-level -x -a 'debug info warn error' -d 'Log level'\n")
	return b.String()
}

func powershellCompletion() string {
	quoted := make([]string, len(commandNames))
	for i, name := range commandNames {
		quoted[i] = "'" + name + "'"
	}
	return fmt.Sprintf(`# tasks PowerShell completion
Register-ArgumentCompleter -Native -CommandName tasks -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    $commands = @(%s)
    $commands | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`, strings.Join(quoted, ", "))
}
