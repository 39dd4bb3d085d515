package reviews

import "github.com/metaquant/engel-landing/internal/domain"

// catalog is the fixed pool of testimonials the feed samples from.
// The first 18 are positive (4-5 stars), the remaining 12 neutral (3 stars).
var catalog = []domain.Review{
	{Name: "Michael Rodriguez", Rating: 5, Comment: "Excelente EA ENGEL para oro. El trailing stop funciona perfectamente en H1.", DaysAgo: 12},
	{Name: "Sarah Chen", Rating: 5, Comment: "La gestión por porcentaje de cuenta es genial. MetaQuant Studio hizo un gran trabajo.", DaysAgo: 8},
	{Name: "David Thompson", Rating: 4, Comment: "Funciona perfectamente en H1 con ICMarkets. He visto mejoras constantes.", DaysAgo: 15},
	{Name: "Elena Kozlova", Rating: 5, Comment: "Después de 3 meses, puedo confirmar que EA ENGEL-Xau 3.0 es sólido y confiable.", DaysAgo: 22},
	{Name: "James Wilson", Rating: 4, Comment: "El filtro de spread realmente marca la diferencia. Muy profesional.", DaysAgo: 6},
	{Name: "Maria Santos", Rating: 5, Comment: "Por fin un EA que entiende el comportamiento del oro en H1. Excelente trabajo.", DaysAgo: 18},
	{Name: "Robert Kim", Rating: 4, Comment: "Los backtests M1 tick by tick coinciden con los resultados reales. Muy confiable.", DaysAgo: 11},
	{Name: "Anna Petrov", Rating: 5, Comment: "Llevo 2 meses usándolo y los resultados superan mis expectativas.", DaysAgo: 9},
	{Name: "Carlos Mendez", Rating: 4, Comment: "La gestión de riesgo sin martingala es muy inteligente. Se nota la experiencia.", DaysAgo: 25},
	{Name: "Lisa Zhang", Rating: 5, Comment: "Perfecto para traders que buscan consistencia en XAUUSD sin grandes riesgos.", DaysAgo: 14},
	{Name: "Ahmed Hassan", Rating: 4, Comment: "El enfoque especializado en XAUUSD H1 realmente funciona. Muy satisfecho.", DaysAgo: 7},
	{Name: "Jennifer Lee", Rating: 5, Comment: "La configuración es simple pero los resultados son sofisticados. Recomendado.", DaysAgo: 20},
	{Name: "Marco Rossi", Rating: 4, Comment: "He probado muchos EAs, este es diferente. Se nota el trabajo de MetaQuant Studio.", DaysAgo: 13},
	{Name: "Yuki Tanaka", Rating: 5, Comment: "El panel de estadísticas en tiempo real es muy útil. Muy recomendado.", DaysAgo: 16},
	{Name: "Thomas Mueller", Rating: 4, Comment: "Funciona especialmente bien en H1 con ICMarkets. Los drawdowns son controlados.", DaysAgo: 10},
	{Name: "Priya Sharma", Rating: 5, Comment: "La especialización en oro se nota en cada operación. Muy recomendado.", DaysAgo: 19},
	{Name: "Alex Petersen", Rating: 4, Comment: "El soporte del desarrollador es excelente y el EA cumple lo que promete.", DaysAgo: 5},
	{Name: "Fatima Al-Rashid", Rating: 5, Comment: "Tres meses de uso constante con EA ENGEL-Xau 3.0 y resultados consistentes.", DaysAgo: 24},

	{Name: "John Anderson", Rating: 3, Comment: "EA ENGEL funciona bien en H1, aunque requiere paciencia para ver resultados.", DaysAgo: 17},
	{Name: "Sophie Martin", Rating: 3, Comment: "Buen EA, pero como siempre recomiendo hacer backtesting propio con ICMarkets.", DaysAgo: 21},
	{Name: "Ivan Volkov", Rating: 3, Comment: "Resultados decentes en XAUUSD. La configuración inicial requiere atención.", DaysAgo: 12},
	{Name: "Rachel Green", Rating: 3, Comment: "Funciona según las especificaciones. Nada extraordinario pero sólido.", DaysAgo: 8},
	{Name: "Luis Garcia", Rating: 3, Comment: "Buen EA ENGEL, aunque los spreads altos pueden afectar el rendimiento.", DaysAgo: 26},
	{Name: "Emma Johnson", Rating: 3, Comment: "Cumple con lo básico en H1. Los resultados varían según las condiciones del mercado.", DaysAgo: 15},
	{Name: "Pierre Dubois", Rating: 3, Comment: "Correcto para lo que es. La documentación podría ser más detallada.", DaysAgo: 9},
	{Name: "Olga Smirnova", Rating: 3, Comment: "Funciona bien en demo con XAUUSD. Aún evaluando en cuenta real.", DaysAgo: 4},
	{Name: "Hassan Ali", Rating: 3, Comment: "Decente para principiantes, aunque requiere entender bien el mercado del oro.", DaysAgo: 23},
	{Name: "Victoria Chang", Rating: 3, Comment: "Los resultados son consistentes con las expectativas en timeframe H1.", DaysAgo: 11},
	{Name: "Gabriel Silva", Rating: 3, Comment: "Buen EA ENGEL, pero siempre importante mantener expectativas realistas.", DaysAgo: 18},
	{Name: "Ingrid Larsson", Rating: 3, Comment: "Funciona como se describe en H1. La paciencia es clave con este tipo de estrategias.", DaysAgo: 6},
}

// Catalog returns a copy of the full review pool.
func Catalog() []domain.Review {
	out := make([]domain.Review, len(catalog))
	copy(out, catalog)
	return out
}
