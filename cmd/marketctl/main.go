// marketctl 是面向市场后端的终端客户端：分页浏览商品/订单/供应商，
// 本页搜索，执行审核与状态流转。界面行为全部走 internal/screen 的
// 控制器，和其他前端共享同一套规则。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"marketplace/internal/client"
	"marketplace/internal/config"
	"marketplace/internal/fallback"
	"marketplace/internal/localstore"
	"marketplace/internal/model"
	"marketplace/internal/screen"
	"marketplace/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	base := flag.String("base", cfg.APIBaseURL, "server base url")
	resource := flag.String("resource", "products", "products | pending | orders | suppliers")
	page := flag.Int("page", 1, "page number (1-indexed)")
	limit := flag.Int("limit", cfg.PageLimit, "items per page")
	status := flag.String("status", "all", "status filter (all = no filter)")
	category := flag.String("category", "all", "category filter, products only")
	search := flag.String("search", "", "search within the fetched page")

	action := flag.String("action", "", "approve|reject|enable|disable|delete|confirm|process|ship|deliver|cancel|verify|unverify")
	id := flag.Uint("id", 0, "entity id for -action")
	notes := flag.String("notes", "", "review notes (required for reject)")
	yes := flag.Bool("yes", false, "confirm destructive actions")
	flag.Parse()

	cl := client.New(*base, cfg.RequestTimeout)
	ctx := context.Background()

	if *action != "" {
		if err := runAction(ctx, cl, *action, *id, *notes, *yes); err != nil {
			fmt.Fprintln(os.Stderr, "action failed:", err)
			os.Exit(1)
		}
		fmt.Println("ok")
		return
	}

	store, err := localstore.Open(cfg.LocalStorePath)
	if err != nil {
		log.WithError(err).Fatal("open local store")
	}
	if *search != "" {
		if err := store.AddSearch(*search); err != nil {
			log.WithError(err).Warn("record search")
		}
	}

	fb := fallback.New(cfg.FallbackEnabled)
	switch *resource {
	case "products", "pending":
		runProducts(ctx, cl, fb, *resource == "pending", *page, *limit, *status, *category, *search)
	case "orders":
		runOrders(ctx, cl, fb, *page, *limit, *status, *search)
	case "suppliers":
		runSuppliers(ctx, cl, fb, *page, *limit, *status, *search)
	default:
		fmt.Fprintln(os.Stderr, "unknown resource:", *resource)
		os.Exit(2)
	}

	if recents := store.RecentSearches(); len(recents) > 0 {
		fmt.Println("\nrecent searches:", strings.Join(recents, ", "))
	}
}

// runAction 通过审核弹窗状态机执行一次变更。
func runAction(ctx context.Context, cl *client.Client, action string, id uint, notes string, yes bool) error {
	if id == 0 {
		return fmt.Errorf("-id is required for -action")
	}

	modal := screen.NewModal()
	var mutate screen.MutateFunc

	switch action {
	case "approve":
		modal.Open(id, workflow.ActionApprove, false)
		mutate = func(ctx context.Context) error {
			_, err := cl.ReviewProduct(ctx, id, true, notes)
			return err
		}
	case "reject":
		modal.Open(id, workflow.ActionReject, true)
		mutate = func(ctx context.Context) error {
			_, err := cl.ReviewProduct(ctx, id, false, notes)
			return err
		}
	case "enable":
		modal.Open(id, workflow.ActionEnable, false)
		mutate = func(ctx context.Context) error {
			_, err := cl.SetProductStatus(ctx, id, model.ProductActive)
			return err
		}
	case "disable":
		modal.Open(id, workflow.ActionDisable, false)
		mutate = func(ctx context.Context) error {
			_, err := cl.SetProductStatus(ctx, id, model.ProductInactive)
			return err
		}
	case "delete":
		// 删除必须显式确认
		if !yes {
			return fmt.Errorf("delete needs -yes to confirm")
		}
		modal.Open(id, workflow.ActionDelete, false)
		mutate = func(ctx context.Context) error {
			return cl.DeleteProduct(ctx, id)
		}
	case "confirm", "process", "ship", "deliver", "cancel":
		target := map[string]model.OrderStatus{
			"confirm": model.OrderConfirmed,
			"process": model.OrderProcessing,
			"ship":    model.OrderShipped,
			"deliver": model.OrderDelivered,
			"cancel":  model.OrderCancelled,
		}[action]
		modal.Open(id, workflow.Action(action), false)
		mutate = func(ctx context.Context) error {
			_, err := cl.SetOrderStatus(ctx, id, target)
			return err
		}
	case "verify":
		modal.Open(id, workflow.ActionApprove, false)
		mutate = func(ctx context.Context) error {
			_, err := cl.SetSupplierVerified(ctx, id, true)
			return err
		}
	case "unverify":
		modal.Open(id, workflow.ActionReject, false)
		mutate = func(ctx context.Context) error {
			_, err := cl.SetSupplierVerified(ctx, id, false)
			return err
		}
	default:
		return fmt.Errorf("unknown action %q", action)
	}

	modal.SetComment(notes)
	if !modal.CanSubmit() {
		return fmt.Errorf("action %q needs a non-empty -notes", action)
	}
	return modal.Submit(ctx, mutate)
}

func runProducts(ctx context.Context, cl *client.Client, fb *fallback.Store, pending bool, page, limit int, status, category, search string) {
	fetch := cl.ListProducts
	if pending {
		fetch = cl.PendingProducts
	}
	list := screen.NewList(
		screen.Fetcher[model.Product](fetch), limit,
		screen.WithFallback(fb.Products),
		screen.WithSearchFields(func(p model.Product) []string {
			return []string{p.Name, p.Description, p.SKU}
		}),
	)
	list.Mount(ctx)
	list.SetFilter(ctx, "status", status)
	list.SetFilter(ctx, "category", category)
	list.SetPage(ctx, page)
	list.SetSearch(search)

	printBanner(list.Err(), list.UsingFallback())
	for _, p := range list.VisibleItems() {
		fmt.Printf("%5d  %-32s %-10s %12s  actions: %s\n",
			p.ID, truncate(p.Name, 32), p.Status, screen.FormatINR(p.Price),
			joinActions(workflow.ProductActions(p.Status)))
	}
	printPager(list.ShowPager(), list.RangeText(), list.Page(), list.TotalPages())
}

func runOrders(ctx context.Context, cl *client.Client, fb *fallback.Store, page, limit int, status, search string) {
	list := screen.NewList(
		screen.Fetcher[model.Order](cl.ListOrders), limit,
		screen.WithFallback(fb.Orders),
		screen.WithSearchFields(func(o model.Order) []string {
			fields := []string{o.OrderNo}
			for _, it := range o.Items {
				fields = append(fields, it.ProductName)
			}
			return fields
		}),
	)
	list.Mount(ctx)
	list.SetFilter(ctx, "status", status)
	list.SetPage(ctx, page)
	list.SetSearch(search)

	printBanner(list.Err(), list.UsingFallback())
	for _, o := range list.VisibleItems() {
		fmt.Printf("%5d  %-28s %-11s %12s  %s  actions: %s\n",
			o.ID, o.OrderNo, o.Status, screen.FormatINR(o.TotalAmount),
			screen.FormatDate(o.CreatedAt),
			joinActions(workflow.OrderActions(o.Status)))
	}
	printPager(list.ShowPager(), list.RangeText(), list.Page(), list.TotalPages())
}

func runSuppliers(ctx context.Context, cl *client.Client, fb *fallback.Store, page, limit int, status, search string) {
	list := screen.NewList(
		screen.Fetcher[model.Supplier](cl.ListSuppliers), limit,
		screen.WithFallback(fb.Suppliers),
		screen.WithSearchFields(func(s model.Supplier) []string {
			return []string{s.BusinessName, s.Email, s.ContactPerson}
		}),
	)
	list.Mount(ctx)
	list.SetFilter(ctx, "verification_status", status)
	list.SetPage(ctx, page)
	list.SetSearch(search)

	printBanner(list.Err(), list.UsingFallback())
	for _, s := range list.VisibleItems() {
		fmt.Printf("%5d  %-28s %-10s %-32s actions: %s\n",
			s.ID, truncate(s.BusinessName, 28), s.VerificationStatus, s.Email,
			joinActions(workflow.SupplierActions(s.VerificationStatus)))
	}
	printPager(list.ShowPager(), list.RangeText(), list.Page(), list.TotalPages())
}

func printBanner(errMsg string, usingFallback bool) {
	if errMsg != "" {
		fmt.Printf("!! fetch failed: %s (use -action retry by re-running)\n", errMsg)
	}
	if usingFallback {
		fmt.Println("!! showing fallback data, not live results")
	}
}

func printPager(show bool, rangeText string, page, totalPages int) {
	if !show {
		return
	}
	fmt.Printf("\n%s  (page %d/%d)\n", rangeText, page, totalPages)
}

func joinActions(actions []workflow.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = string(a)
	}
	return strings.Join(parts, "/")
}

// truncate 按字符数截断，多字节字符不能被从中间切开。
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
