package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/xlovstudio/rui/rui"
	"github.com/xlovstudio/rui/rui/commands/admin"
	"github.com/xlovstudio/rui/rui/commands/cards"
	"github.com/xlovstudio/rui/rui/commands/economy"
	"github.com/xlovstudio/rui/rui/commands/system"
	"github.com/xlovstudio/rui/rui/handlers"
)

var Commands = []discord.ApplicationCommandCreate{}

func init() {
	Commands = append(Commands, system.Commands...)
	Commands = append(Commands, economy.Commands...)
	Commands = append(Commands, cards.Commands...)
	Commands = append(Commands, admin.Commands...)
}

// Register binds every command and component handler to h.
func Register(h *handler.Mux, b *rui.Bot) {
	// System commands
	h.Command("/ping", handlers.WrapWithLogging("ping", system.PingHandler(b)))
	h.Command("/start", handlers.WrapWithLogging("start", system.StartHandler(b)))
	h.Command("/overview", handlers.WrapWithLogging("overview", system.OverviewHandler(b)))

	// Economy commands
	h.Command("/balance", handlers.WrapWithLogging("balance", economy.BalanceHandler(b)))
	h.Command("/daily", handlers.WrapWithLogging("daily", economy.DailyHandler(b)))
	h.Command("/weekly", handlers.WrapWithLogging("weekly", economy.WeeklyHandler(b)))
	h.Command("/monthly", handlers.WrapWithLogging("monthly", economy.MonthlyHandler(b)))
	h.Command("/work", handlers.WrapWithLogging("work", economy.WorkHandler(b)))
	h.Command("/gift", handlers.WrapWithLogging("gift", economy.GiftHandler(b)))

	// Card commands
	h.Command("/drop", handlers.WrapWithLogging("drop", cards.DropHandler(b)))
	h.Component("/drop/pick/{index}", handlers.WrapComponentWithLogging("pick", cards.PickHandler(b)))
	h.Command("/claim", handlers.WrapWithLogging("claim", cards.ClaimHandler(b)))
	h.Command("/inventory", handlers.WrapWithLogging("inventory", cards.InventoryHandler(b)))
	h.Command("/buy", handlers.WrapWithLogging("buy", cards.BuyHandler(b)))
	h.Command("/buyboost", handlers.WrapWithLogging("buyboost", cards.BuyBoostHandler(b)))
	h.Command("/buypack", handlers.WrapWithLogging("buypack", cards.BuyPackHandler(b)))

	// Staff commands
	h.Command("/addcard", handlers.WrapWithLogging("addcard", admin.AddCardHandler(b)))
}
