package plugin

import (
	"bytes"
	"context"
	"strings"

	"github.com/rodaine/table"

	burnguard "github.com/goliatone/go-burnguard"
	"github.com/goliatone/go-burnguard/pkg/authz"
	"github.com/goliatone/go-burnguard/pkg/commands"
	"github.com/goliatone/go-burnguard/pkg/i18n"
)

// HandleChat runs a chat line such as "/bb status". The bool reports whether
// the line addressed this plugin.
func (p *Plugin) HandleChat(ctx context.Context, actor burnguard.Actor, line string, reply commands.Reply) (bool, error) {
	return p.router.Dispatch(ctx, actor, line, reply)
}

// Commands exposes the top level chat commands.
func (p *Plugin) Commands() []*commands.Command {
	return p.router.All()
}

func (p *Plugin) defineCommands() {
	p.router = commands.NewRouter()
	p.router.Define(commands.Definition{
		Name:        "burned_begone",
		Aliases:     []string{"bb"},
		Usage:       "/bb [status|info|items|reload|toggle]",
		Description: "Cooked food burn protection",
	}, p.cmdRoot)

	p.sub = commands.NewRouter()
	p.sub.Define(commands.Definition{Name: "status", Description: "Show your protection status"}, p.cmdStatus)
	p.sub.Define(commands.Definition{Name: "info", Description: "Show plugin information"}, p.cmdInfo)
	p.sub.Define(commands.Definition{Name: "items", Aliases: []string{"list"}, Description: "List protected items"}, p.cmdItems)
	p.sub.Define(commands.Definition{Name: "reload", Description: "Reload plugin configuration"}, p.adminOnly(p.cmdReload))
	p.sub.Define(commands.Definition{Name: "toggle", Description: "Toggle plugin on/off"}, p.adminOnly(p.cmdToggle))
}

func (p *Plugin) msg(ctx *commands.Context, key string, args ...any) {
	ctx.Reply(p.catalog.Message(key, ctx.Actor.Locale, args...))
}

func (p *Plugin) isAdmin(actor burnguard.Actor) bool {
	return p.authz.UserHasPermission(actor.ID, authz.PermissionAdmin)
}

func (p *Plugin) adminOnly(next commands.Handler) commands.Handler {
	return func(ctx *commands.Context) {
		if !p.isAdmin(ctx.Actor) {
			p.msg(ctx, i18n.NoPermission)
			return
		}
		next(ctx)
	}
}

func (p *Plugin) cmdRoot(ctx *commands.Context) {
	if !p.Config().Setting().EnableChatCommands {
		p.msg(ctx, i18n.ChatCommandsDisabled)
		return
	}
	if !p.sub.Run(ctx.Ctx, ctx.Actor, ctx.Args, ctx.Raw, ctx.Reply) {
		p.cmdHelp(ctx)
	}
}

func (p *Plugin) cmdHelp(ctx *commands.Context) {
	p.msg(ctx, i18n.HelpHeader)
	p.msg(ctx, i18n.HelpStatus)
	p.msg(ctx, i18n.HelpInfo)
	p.msg(ctx, i18n.HelpItems)
	if p.isAdmin(ctx.Actor) {
		p.msg(ctx, i18n.HelpReload)
		p.msg(ctx, i18n.HelpToggle)
	}
}

func (p *Plugin) cmdStatus(ctx *commands.Context) {
	settings := p.Config().Setting()
	if !settings.RequirePermission || p.authz.UserHasPermission(ctx.Actor.ID, authz.PermissionUse) {
		p.msg(ctx, i18n.StatusProtected)
	} else {
		p.msg(ctx, i18n.StatusNotProtected)
		p.msg(ctx, i18n.StatusNeedPermission, authz.PermissionUse)
	}
	p.msg(ctx, i18n.StatusProtectedItems, p.ledger.Len())
	p.msg(ctx, i18n.StatusPermissionMode, settings.PermissionMode)
}

func (p *Plugin) cmdInfo(ctx *commands.Context) {
	settings := p.Config().Setting()
	p.msg(ctx, i18n.InfoHeader)
	p.msg(ctx, i18n.InfoVersion, Version)
	p.msg(ctx, i18n.InfoProtectedItems, p.ledger.Len())
	p.msg(ctx, i18n.InfoPermissionRequired, settings.RequirePermission)
	p.msg(ctx, i18n.InfoPermissionMode, settings.PermissionMode)
}

func (p *Plugin) cmdItems(ctx *commands.Context) {
	ids := p.ledger.Identifiers()
	p.msg(ctx, i18n.ItemsHeader, len(ids))
	if len(ids) == 0 {
		return
	}
	originals := p.ledger.Originals()
	var buf bytes.Buffer
	tbl := table.New("Item", "Low", "High").WithWriter(&buf)
	for _, id := range ids {
		pair := originals[id]
		tbl.AddRow(id, pair.Low, pair.High)
	}
	tbl.Print()
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		ctx.Reply(strings.TrimRight(line, " "))
	}
}

func (p *Plugin) cmdReload(ctx *commands.Context) {
	if err := p.Reload(ctx.Ctx); err != nil {
		p.logger.Error("burnedbegone reload failed", "actor", ctx.Actor.ID, "error", err)
	}
	p.msg(ctx, i18n.ConfigReloaded)
}

func (p *Plugin) cmdToggle(ctx *commands.Context) {
	p.msg(ctx, i18n.ToggleUseConsole)
}
