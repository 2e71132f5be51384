package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/vfg2006/crm-lite/pkg/cliErrors"
	"github.com/vfg2006/crm-lite/pkg/log"
)

var (
	WithCommands = func(commands ...Command) ConfigRouter {
		return func(router *Router) {
			router.AddCommands(commands...)
		}
	}

	WithMiddlewares = func(middlewares ...Middleware) ConfigRouter {
		return func(router *Router) {
			router.middlewares = append(router.middlewares, middlewares...)
		}
	}
)

// Invocation carrega os argumentos e as saídas de uma execução de comando
type Invocation struct {
	Name   string
	Args   []string
	Stdout io.Writer
	Stderr io.Writer
}

type Handler func(ctx context.Context, inv *Invocation) error

type Middleware func(next Handler) Handler

type Command struct {
	Name        string
	Usage       string
	Handler     Handler
	Middlewares []Middleware // Lista de middlewares específicos para este comando
}

type Router struct {
	commands    map[string]Command
	middlewares []Middleware
}

type ConfigRouter func(router *Router)

func New(configs ...ConfigRouter) Router {
	router := &Router{
		commands: make(map[string]Command),
	}

	for _, config := range configs {
		config(router)
	}

	return *router
}

// AddCommands registra os comandos com seus middlewares específicos
func (r *Router) AddCommands(commands ...Command) {
	for _, command := range commands {
		r.commands[command.Name] = command
	}
}

// Dispatch executa o comando indicado em args[0] e devolve o código de saída do processo
func (r Router) Dispatch(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		r.PrintUsage(stderr)
		return cliErrors.ExitCode(cliErrors.ErrInvalidRequest)
	}

	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		r.PrintUsage(stdout)
		return 0
	}

	command, exists := r.commands[name]
	if !exists {
		_ = cliErrors.WriteError(stderr, cliErrors.ErrInvalidRequest, fmt.Sprintf("comando desconhecido: %s", name), nil)
		r.PrintUsage(stderr)
		return cliErrors.ExitCode(cliErrors.ErrInvalidRequest)
	}

	handler := command.Handler

	// Middlewares do comando primeiro, depois os globais; o primeiro da lista é o mais externo
	for i := len(command.Middlewares) - 1; i >= 0; i-- {
		handler = command.Middlewares[i](handler)
	}
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}

	ctx = log.WithCommand(ctx, name)

	err := handler(ctx, &Invocation{
		Name:   name,
		Args:   args[1:],
		Stdout: stdout,
		Stderr: stderr,
	})
	if err == nil {
		return 0
	}

	cliErr := cliErrors.FromError(err)
	if writeErr := cliErrors.WriteError(stderr, cliErr.Code, cliErr.Message, cliErr.Details); writeErr != nil {
		log.ForContext(ctx).WithError(writeErr).Error("Erro ao escrever resposta de erro")
	}

	return cliErrors.ExitCode(cliErr.Code)
}

func (r Router) PrintUsage(w io.Writer) {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Uso: crm <comando> [opções]")
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(tw, "  %s\t%s\n", name, strings.TrimSpace(r.commands[name].Usage))
	}
	_ = tw.Flush()
}
