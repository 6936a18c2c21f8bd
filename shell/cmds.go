package shell

import "github.com/beevik/cmd"

var cmds *cmd.Tree

func init() {
	root := cmd.NewTree("wordasm")

	root.AddCommand(cmd.Command{
		Name:        "help",
		Brief:       "Display help for a command",
		Description: "Display help for a command, or list all commands if none is given.",
		Usage:       "help [<command>]",
		Data:        (*Shell).cmdHelp,
	})
	root.AddCommand(cmd.Command{
		Name:  "load",
		Brief: "Assemble a source file and load its tables",
		Description: "Run the assembler against <stem>.as and make the" +
			" resulting symbol, code, data, entries, and externs tables" +
			" available to the other inspection commands.",
		Usage: "load <stem>",
		Data:  (*Shell).cmdLoad,
	})
	root.AddCommand(cmd.Command{
		Name:        "symbols",
		Brief:       "List the symbol table",
		Description: "List every symbol defined during the loaded assembly run.",
		Usage:       "symbols",
		Data:        (*Shell).cmdSymbols,
	})
	root.AddCommand(cmd.Command{
		Name:        "code",
		Brief:       "List the code table",
		Description: "List every encoded or pending code word, in address order.",
		Usage:       "code",
		Data:        (*Shell).cmdCode,
	})
	root.AddCommand(cmd.Command{
		Name:        "data",
		Brief:       "List the data table",
		Description: "List every encoded data word, in address order.",
		Usage:       "data",
		Data:        (*Shell).cmdData,
	})
	root.AddCommand(cmd.Command{
		Name:        "entries",
		Brief:       "List the entries table",
		Description: "List every symbol exported via .entry.",
		Usage:       "entries",
		Data:        (*Shell).cmdEntries,
	})
	root.AddCommand(cmd.Command{
		Name:        "externs",
		Brief:       "List the externals table",
		Description: "List every external reference site recorded during the second pass.",
		Usage:       "externs",
		Data:        (*Shell).cmdExterns,
	})
	root.AddCommand(cmd.Command{
		Name:  "dump",
		Brief: "Dump a loaded run's expanded source",
		Description: "Print the macro-expanded (.am) source lines of a" +
			" previously loaded stem.",
		Usage: "dump <stem>",
		Data:  (*Shell).cmdDump,
	})
	root.AddCommand(cmd.Command{
		Name:  "set",
		Brief: "Change a shell setting",
		Description: "Display all shell settings, or change one. Setting" +
			" names may be abbreviated to an unambiguous prefix.",
		Usage: "set [<setting> <value>]",
		Data:  (*Shell).cmdSet,
	})
	root.AddCommand(cmd.Command{
		Name:        "quit",
		Brief:       "Exit the shell",
		Description: "Exit the shell.",
		Usage:       "quit",
		Data:        (*Shell).cmdQuit,
	})

	cmds = root
}
